package config

type InternalConfig struct {
	App App
}

type App struct {
	Env                      string
	Port                     string
	Version                  string
	Timezone                 string
	EndpointPrefix           string
	MaxRequests              int
	ShutdownTimeoutInSeconds int
	RequestTimeoutInSeconds  int
	// BookingLockTTLInSeconds bounds how long a per-doctor booking lock may
	// outlive a crashed holder before expiring on its own.
	BookingLockTTLInSeconds int
	// AvailabilityCacheTTLInSecs bounds staleness of cached availability reads.
	AvailabilityCacheTTLInSecs int
	// AvailabilityWindowDays is the rolling window the cache warmer recomputes.
	AvailabilityWindowDays int
	CacheWarmerCronSpec    string
	BookingEventsQueue     string
}
