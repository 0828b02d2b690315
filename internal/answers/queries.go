package answers

import (
	"context"
	"fmt"

	"nytaxi/internal/report"
	"nytaxi/internal/storage"
)

const (
	novStart  = "2025-11-01"
	decStart  = "2025-12-01"
	busiestOn = "2025-11-18"
	tipZone   = "East Harlem North"
)

// sqlNames holds the dialect-quoted identifiers shared by the queries.
type sqlNames struct {
	zones, trips, pickup         string
	zone, locationID, puID, doID string
	d                            storage.Dialect
}

func names(repo storage.Repository, t Tables) sqlNames {
	d := repo.Dialect()
	return sqlNames{
		zones:      d.QuoteFQN(t.Zones),
		trips:      d.QuoteFQN(t.Trips),
		pickup:     d.QuoteIdent(t.Pickup),
		zone:       d.QuoteIdent("Zone"),
		locationID: d.QuoteIdent("LocationID"),
		puID:       d.QuoteIdent("PULocationID"),
		doID:       d.QuoteIdent("DOLocationID"),
		d:          d,
	}
}

func shortTrips(ctx context.Context, repo storage.Repository, t Tables) (string, error) {
	n := names(repo, t)
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s
WHERE %s >= '%s' AND %s < '%s' AND trip_distance <= 1.0`,
		n.trips, n.pickup, novStart, n.pickup, decStart)

	var count int64
	if err := repo.QueryRow(ctx, q).Scan(&count); err != nil {
		return "", err
	}
	return report.Count(count), nil
}

func longestTripDay(ctx context.Context, repo storage.Repository, t Tables) (string, error) {
	n := names(repo, t)
	day := n.d.DayOf(n.pickup)
	q := fmt.Sprintf(`SELECT %s AS pickup_day, MAX(trip_distance) AS distance
FROM %s
WHERE trip_distance < 100
GROUP BY %s
ORDER BY distance DESC %s`,
		day, n.trips, day, n.d.First)

	var (
		date     string
		distance float64
	)
	if err := repo.QueryRow(ctx, q).Scan(&date, &distance); err != nil {
		return "", err
	}
	return date, nil
}

func biggestPickupZone(ctx context.Context, repo storage.Repository, t Tables) (string, error) {
	n := names(repo, t)
	q := fmt.Sprintf(`SELECT z.%s, SUM(t.total_amount) AS total
FROM %s t
JOIN %s z ON t.%s = z.%s
WHERE %s = '%s'
GROUP BY z.%s
ORDER BY total DESC %s`,
		n.zone, n.trips, n.zones, n.puID, n.locationID,
		n.d.DayOf("t."+n.pickup), busiestOn,
		n.zone, n.d.First)

	var (
		zone  string
		total float64
	)
	if err := repo.QueryRow(ctx, q).Scan(&zone, &total); err != nil {
		return "", err
	}
	return zone, nil
}

func biggestTipDropoff(ctx context.Context, repo storage.Repository, t Tables) (string, error) {
	n := names(repo, t)
	q := fmt.Sprintf(`SELECT dz.%s, MAX(t.tip_amount) AS tip
FROM %s t
JOIN %s pz ON t.%s = pz.%s
JOIN %s dz ON t.%s = dz.%s
WHERE pz.%s = '%s'
  AND t.%s >= '%s' AND t.%s < '%s'
GROUP BY dz.%s
ORDER BY tip DESC %s`,
		n.zone,
		n.trips,
		n.zones, n.puID, n.locationID,
		n.zones, n.doID, n.locationID,
		n.zone, tipZone,
		n.pickup, novStart, n.pickup, decStart,
		n.zone, n.d.First)

	var (
		zone string
		tip  float64
	)
	if err := repo.QueryRow(ctx, q).Scan(&zone, &tip); err != nil {
		return "", err
	}
	return zone, nil
}
