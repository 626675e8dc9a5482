package storages

import "github.com/naderabdullah/cardforge/storages/keystores"

// Conf maps the app's on-disk storage locations (.storages.json).
type Conf struct {
	DesignDir string         `json:"design_dir"` // card design catalog
	FontDir   string         `json:"font_dir"`   // extra renderer fonts
	LogoDir   string         `json:"logo_dir"`   // uploaded logo store
	KeyStore  keystores.Conf `json:"keystore"`   // token verification keys
}
