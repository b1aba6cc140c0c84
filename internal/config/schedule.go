package config

// ScheduleConfig holds schedule engine configuration shared by the
// server and the worker.
type ScheduleConfig struct {
	// Timezone is the IANA business timezone all calendar math runs in.
	// Staff, tasks and holidays all belong to one region.
	Timezone string `env:"ROTA_TIMEZONE" default:"Africa/Johannesburg"`
}
