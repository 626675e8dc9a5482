package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naderabdullah/cardforge/catalog"
	"github.com/naderabdullah/cardforge/conf"
	"github.com/naderabdullah/cardforge/handlers"
	"github.com/naderabdullah/cardforge/throttle"
	"github.com/naderabdullah/cardforge/uds"
	"github.com/naderabdullah/cardforge/web/session"
)

const (
	throttleGroupID = "api"

	imgCacheCapacity = 256
	imgCacheTTL      = time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the card generation HTTP service",
	Long: `Serve loads the design catalog and all configured backends, then
listens for generation requests until SIGINT/SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appRoot, _ := cmd.Flags().GetString("app-root")
		sockPath, _ := cmd.Flags().GetString("socket")
		return runServe(appRoot, sockPath)
	},
}

func init() {
	serveCmd.Flags().String("app-root", ".", "application root holding config/ and storage dirs")
	serveCmd.Flags().String("socket", "", "unix control socket path (empty = disabled)")
}

func runServe(appRoot, sockPath string) error {
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	core := &conf.Core[string]{}
	if err := core.BaseInit(appRoot, rootCtx, rootCancel); err != nil {
		return fmt.Errorf("core init: %w", err)
	}
	if err := core.LoadStorageConf(); err != nil {
		return fmt.Errorf("storage conf: %w", err)
	}

	// Backends. KV is optional: previews and shared caching need it,
	// plain generation does not.
	if err := core.PrepareKVDatabase(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("kv database: %w", err)
		}
		log.Println("[INFO] no KV database configured")
	}
	if err := core.PrepareSQLDatabases(); err != nil {
		return fmt.Errorf("sql databases: %w", err)
	}

	core.PrepareJobScheduler()
	core.PrepareThrottleBucketStore(time.Minute, 10*time.Minute)
	core.ThrottleBucketStore.SetBucketGroup(throttleGroupID, &throttle.BucketConf{
		Burst:     30,
		Increment: 30,
		Period:    time.Minute,
	})

	core.PrepareImageCache(imgCacheCapacity, imgCacheTTL)
	if err := core.PrepareLogoFetcher(); err != nil {
		return fmt.Errorf("logo fetcher: %w", err)
	}

	// SQL catalog when a "designs" database is configured, watched
	// directory catalog otherwise.
	if _, ok := core.BackendSQLDBClients["designs"]; ok {
		if err := core.PrepareSQLDesignCatalog("designs"); err != nil {
			return fmt.Errorf("design catalog: %w", err)
		}
	} else {
		if err := core.PrepareDesignCatalog(true); err != nil {
			return fmt.Errorf("design catalog: %w", err)
		}
	}

	if err := core.PrepareHTMLTemplateStore(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("html templates: %w", err)
		}
		log.Println("[INFO] no html templates found")
	}
	if err := core.PreparePrintShops(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("print shops: %w", err)
		}
		log.Println("[INFO] no print shops configured")
	}
	if core.BackendKVDBClient != nil {
		if err := core.PrepareWebSessions(); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("web sessions: %w", err)
			}
			log.Println("[INFO] no web session conf. admin endpoints disabled")
		}
	}
	if err := core.PrepareMainBackendClient(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("main backend client: %w", err)
		}
		log.Println("[INFO] no main backend configured")
	}
	if err := core.PrepareVerificationKeys(); err != nil {
		log.Printf("[WARN] no verification keys: %v. generation endpoints run unauthenticated", err)
	}

	core.PrepareAssembler(nil)
	if err := core.PrepareCapturer(); err != nil {
		return fmt.Errorf("capture backend: %w", err)
	}
	if err := core.PrepareMailer(); err != nil {
		return fmt.Errorf("mail delivery: %w", err)
	}

	api := &handlers.API{
		Catalog:    core.DesignCatalog,
		Assembler:  core.Assembler,
		Capturer:   core.Capturer,
		Logos:      core.LogoFetcher,
		KV:         core.BackendKVDBClient,
		Templates:  core.HTMLTemplateStore,
		PublicHost: core.Host,
		Debug:      core.DebugOpts.APIDebugData,
	}
	if dirStore, ok := core.DesignCatalog.(*catalog.DirStore); ok {
		api.ReloadCatalog = dirStore.Load
	}
	if core.MainBackendClient != nil {
		api.JWKSProxy = core.MainBackendClient.JWKSFileResponse
	}
	if core.Mailer != nil {
		api.Mailer = core.Mailer
		api.Shops = core.GetPrintShopConf
	}

	wr := handlers.Wrappers{
		Throttle: &handlers.ThrottleWrapper{
			Buckets: core.ThrottleBucketStore,
			GroupID: throttleGroupID,
		},
	}
	if core.VerificationKeys != nil {
		wr.Auth = &handlers.BearerAuthWrapper{Keys: core.VerificationKeys}
	}
	if core.WebSessionManager != nil {
		wr.Session = &handlers.SessionWrapper{Manager: core.WebSessionManager}
	}

	core.PrepareWebService(core.Listen, handlers.BuildRouter(api, wr))
	if sockPath != "" {
		core.PrepareUDSService(sockPath, controlCommands(core, api))
	}

	if err := core.StartServices(); err != nil {
		core.StopServices()
		core.ResourceCleanUp()
		return fmt.Errorf("starting services: %w", err)
	}
	// RootCtx cancellation (signal or fatal error) stops everything
	go func() {
		<-core.RootCtx.Done()
		core.StopServices()
	}()

	err := core.WaitServicesDone()
	core.ResourceCleanUp()
	return err
}

// controlCommands - the unix socket operator surface
func controlCommands(core *conf.Core[string], api *handlers.API) map[string]uds.CmdHnd {
	return map[string]uds.CmdHnd{
		"reload-catalog": {
			Desc:  "re-read the design catalog from its backing store",
			Usage: "reload-catalog",
			Fn: func(args []string, w io.Writer) error {
				if api.ReloadCatalog == nil {
					_, err := fmt.Fprintln(w, "catalog is static. nothing to reload")
					return err
				}
				if err := api.ReloadCatalog(); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "catalog reloaded: %d designs\n", core.DesignCatalog.Len())
				return err
			},
		},
		"validate-catalog": {
			Desc:  "report schema problems per design",
			Usage: "validate-catalog",
			Fn: func(args []string, w io.Writer) error {
				bad := 0
				for _, res := range catalog.ValidateCatalog(core.DesignCatalog) {
					if res.OK() {
						continue
					}
					bad++
					fmt.Fprintf(w, "%s:\n", res.DesignID)
					for _, p := range res.Problems {
						fmt.Fprintf(w, "  - %s\n", p)
					}
				}
				_, err := fmt.Fprintf(w, "%d designs checked, %d with problems\n", core.DesignCatalog.Len(), bad)
				return err
			},
		},
		"designs": {
			Desc:  "list loaded design IDs",
			Usage: "designs",
			Fn: func(args []string, w io.Writer) error {
				for _, d := range core.DesignCatalog.All() {
					fmt.Fprintf(w, "%s\t%s\n", d.ID, d.Theme)
				}
				return nil
			},
		},
		"grant-session": {
			Desc:  "mint an admin web session and print its cookie value",
			Usage: "grant-session",
			Fn: func(args []string, w io.Writer) error {
				if core.WebSessionManager == nil {
					_, err := fmt.Fprintln(w, "web sessions not configured")
					return err
				}
				id, cookieVal, err := core.WebSessionManager.CreateWebSession(core.RootCtx)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "session %s\n", id)
				_, err = fmt.Fprintf(w, "cookie %s=%s\n", session.CookieName, cookieVal)
				return err
			},
		},
		"revoke-session": {
			Desc:  "revoke an admin web session by ID",
			Usage: "revoke-session <session-id>",
			Fn: func(args []string, w io.Writer) error {
				if core.WebSessionManager == nil {
					_, err := fmt.Fprintln(w, "web sessions not configured")
					return err
				}
				if len(args) != 1 {
					return fmt.Errorf("usage: revoke-session <session-id>")
				}
				if err := core.WebSessionManager.RevokeWebSession(core.RootCtx, args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintln(w, "session revoked")
				return err
			},
		},
		"reload-shops": {
			Desc:  "hot-reload the print shop registry",
			Usage: "reload-shops",
			Fn: func(args []string, w io.Writer) error {
				if err := core.PreparePrintShops(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(w, "print shops reloaded")
				return err
			},
		},
	}
}
