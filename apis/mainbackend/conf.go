package mainbackend

type Conf struct {
	Host     string `json:"host"`
	ClientID string `json:"client_id"` // this app's ID at the upstream
}
