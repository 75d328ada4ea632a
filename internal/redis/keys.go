package redisx

import (
	"fmt"
	"time"
)

const ns = "fluvial:v1"

// OccurrenceSuffix flattens a trip tuple into a stable key fragment.
func OccurrenceSuffix(vesselID, routeID int64, travelDate time.Time, travelTime string) string {
	return fmt.Sprintf("%d:%d:%s:%s", vesselID, routeID, travelDate.Format("2006-01-02"), travelTime)
}

func KeyOccurrenceAvailability(vesselID, routeID int64, travelDate time.Time, travelTime string) string {
	return fmt.Sprintf("%s:occ:%s:availability", ns, OccurrenceSuffix(vesselID, routeID, travelDate, travelTime))
}

func KeyRouteSummary(routeID int64) string {
	return fmt.Sprintf("%s:ruta:%d:summary", ns, routeID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelOccurrencesChanged() string {
	return ns + ":occurrences:changed"
}
