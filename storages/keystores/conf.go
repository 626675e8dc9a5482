package keystores

// Conf locates the PEM key material on disk. This service only ever
// verifies, so the private side may be empty.
type Conf struct {
	Type          string `json:"type"`
	PrivateKeyDir string `json:"private_key_dir"`
	PublicKeyDir  string `json:"public_key_dir"`
}
