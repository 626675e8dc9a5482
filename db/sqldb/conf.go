package sqldb

type Conf struct {
	Type string `json:"type"` // "mysql", "pgsql"
	Host string `json:"host"`
	Port int    `json:"port"`
	User string `json:"user"`
	PW   string `json:"pw"`
	DB   string `json:"db"`
	TZ   string `json:"tz"`  // connection timezone
	DSN  string `json:"dsn"` // overrides the assembled DSN when set
}
