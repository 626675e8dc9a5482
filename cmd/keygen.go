package cmd

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/naderabdullah/cardforge/sec"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an RSA key pair for token verification",
	Long: `Keygen writes <kid>_private.pem and <kid>_public.pem into the key
directories and refreshes jwks.json from the public directory. Meant
for development setups without an upstream account service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		privDir, _ := cmd.Flags().GetString("private-dir")
		pubDir, _ := cmd.Flags().GetString("public-dir")
		bits, _ := cmd.Flags().GetInt("bits")
		return runKeygen(cmd, privDir, pubDir, bits)
	},
}

func init() {
	keygenCmd.Flags().String("private-dir", "storage/keys/private", "directory for the private key")
	keygenCmd.Flags().String("public-dir", "storage/keys/public", "directory for the public key and jwks.json")
	keygenCmd.Flags().Int("bits", 2048, "RSA key size")
}

func runKeygen(cmd *cobra.Command, privDir, pubDir string, bits int) error {
	for _, dir := range []string{privDir, pubDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}
	kid, err := sec.GenerateKeyID(&key.PublicKey, 16)
	if err != nil {
		return err
	}

	privPath := filepath.Join(privDir, kid+"_private.pem")
	pubPath := filepath.Join(pubDir, kid+"_public.pem")
	if err = sec.SavePrivatePEMKeyLocal(privPath, key); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}
	if err = sec.SavePublicPEMKeyLocal(pubPath, &key.PublicKey); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}

	// read both back so a bad write surfaces now, not at verify time
	if _, err = sec.LoadLocalPrivatePEMKey(privPath); err != nil {
		return fmt.Errorf("rereading private key: %w", err)
	}
	if _, err = sec.LoadLocalPublicPEMKey(pubPath); err != nil {
		return fmt.Errorf("rereading public key: %w", err)
	}

	jwks, err := sec.LoadPublicPEMKeysAsJWKS(pubDir)
	if err != nil {
		return fmt.Errorf("building jwks: %w", err)
	}
	jwksPath := filepath.Join(pubDir, "jwks.json")
	if err = jwks.CreateJSONFile(jwksPath); err != nil {
		return fmt.Errorf("writing jwks: %w", err)
	}

	cmd.Printf("kid %s\n", kid)
	cmd.Printf("private %s\n", privPath)
	cmd.Printf("public  %s\n", pubPath)
	cmd.Printf("jwks    %s (%d keys)\n", jwksPath, len(jwks.Keys))
	return nil
}
