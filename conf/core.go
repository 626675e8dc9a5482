package conf

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/naderabdullah/cardforge/apis/mainbackend"
	"github.com/naderabdullah/cardforge/capture"
	"github.com/naderabdullah/cardforge/catalog"
	"github.com/naderabdullah/cardforge/db/kvdb"
	"github.com/naderabdullah/cardforge/db/kvdb/impls/redis"
	"github.com/naderabdullah/cardforge/db/sqldb"
	"github.com/naderabdullah/cardforge/db/sqldb/impls/mysql"
	"github.com/naderabdullah/cardforge/db/sqldb/impls/pgsql"
	"github.com/naderabdullah/cardforge/delivery"
	"github.com/naderabdullah/cardforge/imgcache"
	"github.com/naderabdullah/cardforge/layout"
	"github.com/naderabdullah/cardforge/pdfs"
	fpdfcanvas "github.com/naderabdullah/cardforge/pdfs/impls/fpdf"
	"github.com/naderabdullah/cardforge/printshops"
	"github.com/naderabdullah/cardforge/schedjobs"
	"github.com/naderabdullah/cardforge/sec"
	"github.com/naderabdullah/cardforge/sheets"
	"github.com/naderabdullah/cardforge/storages"
	"github.com/naderabdullah/cardforge/svc"
	"github.com/naderabdullah/cardforge/throttle"
	"github.com/naderabdullah/cardforge/tpl"
	"github.com/naderabdullah/cardforge/uds"
	"github.com/naderabdullah/cardforge/web"
	"github.com/naderabdullah/cardforge/web/session"
)

type DebugOpts struct {
	LogRequests  bool `json:"log_requests"`
	APIDebugData bool `json:"api_debug_data"` // attach diagnostics to API responses
}

// Core - common config
// B = Throttle BucketID Type _ e.g. string, int64, etc
type Core[B comparable] struct {
	AppName             string                              `json:"app_name"`
	Listen              string                              `json:"listen"`     // HTTP Server Listen IP:PORT Address
	Host                string                              `json:"host"`       // HTTP Host. Can be used to generate public url endpoints
	DebugOpts           DebugOpts                           `json:"debug_opts"` // Debug Options
	AppRoot             string                              `json:"-"`          // Filled from compiled paths
	RootCtx             context.Context                     `json:"-"`          // Global Context with RootCancel
	RootCancel          context.CancelFunc                  `json:"-"`          // CancelFunc for RootCtx
	UDSService          *uds.Service                        `json:"-"`          // PrepareUDSService
	JobScheduler        *schedjobs.Scheduler                `json:"-"`          // PrepareJobScheduler
	WebService          *web.Service                        `json:"-"`          // PrepareWebService
	ThrottleBucketStore *throttle.BucketStore[B]            `json:"-"`          // PrepareThrottleBucketStore
	VolatileKV          *sync.Map                           `json:"-"`          // map[string]string
	SessionLocks        *sync.Map                           `json:"-"`          // map[string]*sync.Mutex for WebSessions
	ActionLocks         *sync.Map                           `json:"-"`          // map[string]struct{}
	StorageConf         storages.Conf                       `json:"-"`          // LoadStorageConf
	BackendHttpClient   *http.Client                        `json:"-"`          // for requests to external apis
	KVDBConf            kvdb.Conf                           `json:"-"`          // loadKVDBConf
	BackendKVDBClient   kvdb.Client                         `json:"-"`          // prepareKVDBClient
	SQLDBConfs          map[string]*sqldb.Conf              `json:"-"`          // loadSQLDBConfs
	BackendSQLDBClients map[string]sqldb.Client             `json:"-"`          // prepareSQLDBClients
	PrintShops          atomic.Pointer[printshops.Registry] `json:"-"`          // [Hot Reload] PreparePrintShops
	WebSessionManager   *session.Manager                    `json:"-"`          // PrepareWebSessions
	MainBackendClient   *mainbackend.Client                 `json:"-"`          // PrepareMainBackendClient
	HTMLTemplateStore   *tpl.HTMLTemplateStore              `json:"-"`          // PrepareHTMLTemplateStore
	DesignCatalog       catalog.Store                       `json:"-"`          // PrepareDesignCatalog
	CatalogWatcher      *catalog.Watcher                    `json:"-"`          // PrepareDesignCatalog (dir catalogs)
	ImageCache          imgcache.Cache                      `json:"-"`          // PrepareImageCache
	LogoFetcher         *imgcache.Fetcher                   `json:"-"`          // PrepareLogoFetcher
	Assembler           *sheets.Assembler                   `json:"-"`          // PrepareAssembler
	Capturer            *capture.Capturer                   `json:"-"`          // PrepareCapturer
	Mailer              *delivery.Mailer                    `json:"-"`          // PrepareMailer
	VerificationKeys    *sec.JWKS                           `json:"-"`          // PrepareVerificationKeys

	services []svc.Service // Services to Manage
	done     chan error
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. prepare base fields
// 4. Start ShutdownSignalListener
func (c *Core[B]) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	envFilePath := filepath.Join(appRoot, "config", ".core.json")
	envBytes, err := os.ReadFile(envFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(envBytes, c); err != nil {
		return err
	}
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.prepareDefaultFeatures()
	c.startShutdownSignalListener()
	return nil
}

func (c *Core[B]) prepareDefaultFeatures() {
	c.VolatileKV = &sync.Map{}
	c.SessionLocks = &sync.Map{}
	c.BackendHttpClient = &http.Client{}
	c.ActionLocks = &sync.Map{}
}

func (c *Core[B]) AddService(s svc.Service) {
	log.Printf("[INFO] adding service: %s", s.Name())
	c.services = append(c.services, s)
	log.Printf("[INFO] total services: %d", len(c.services))
}

func (c *Core[B]) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		err := s.Start()
		if err != nil {
			return err
		}
		go func(s svc.Service) {
			err := <-s.Done()
			c.done <- err
		}(s) // pass the loop var to the param. otherwise, they are captured inside goroutine lazily
	}
	return nil
}

func (c *Core[B]) WaitServicesDone() error {
	for i := 0; i < len(c.services); i++ {
		if err := <-c.done; err != nil {
			return err
		}
	}
	return nil
}

func (c *Core[B]) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

var once sync.Once

func (c *Core[B]) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // broadcast to all child services via Context.Done()
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

func (c *Core[B]) PrepareJobScheduler() {
	c.JobScheduler = schedjobs.NewScheduler(c.RootCtx)
	c.AddService(c.JobScheduler)
}

func (c *Core[B]) PrepareUDSService(sockPath string, cmdMap map[string]uds.CmdHnd) {
	c.UDSService = uds.NewService(c.RootCtx, sockPath, cmdMap)
	c.AddService(c.UDSService)
}

func (c *Core[B]) PrepareWebService(addr string, router http.Handler) {
	c.WebService = web.NewService(c.RootCtx, addr, router)
	c.AddService(c.WebService)
}

func (c *Core[B]) PrepareThrottleBucketStore(cleanupCycle time.Duration, cleanupOlderThan time.Duration) {
	c.ThrottleBucketStore = throttle.NewBucketStore[B](c.RootCtx, cleanupCycle, cleanupOlderThan)
	c.AddService(c.ThrottleBucketStore)
}

func (c *Core[B]) LoadStorageConf() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".storages.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(confBytes, &c.StorageConf); err != nil {
		return err
	}
	return nil
}

func (c *Core[B]) PrepareKVDatabase() error {
	// Load KV Database Config File
	err := c.loadKVDBConf()
	if err != nil {
		return err
	}
	if err = c.prepareKVDBClient(); err != nil {
		return err
	}
	return nil
}

func (c *Core[B]) loadKVDBConf() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".kv-databases.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(confBytes, &c.KVDBConf); err != nil {
		return err
	}
	return nil
}

func (c *Core[B]) prepareKVDBClient() error {
	switch c.KVDBConf.Type {
	case "redis":
		c.BackendKVDBClient = &redis.Client{Conf: &c.KVDBConf}
		if err := c.BackendKVDBClient.Init(); err != nil {
			return err
		}
	// case "memcached"
	default:
		return errors.New("unsupported key-value database type")
	}
	return nil
}

func (c *Core[B]) loadSQLDBConfs() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".sql-databases.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	c.SQLDBConfs = make(map[string]*sqldb.Conf)
	if err = json.Unmarshal(confBytes, &c.SQLDBConfs); err != nil {
		return err
	}
	return nil
}

// prepareSQLDBClients - Build & Init SQL DB Clients
// Use after loadSQLDBConfs
func (c *Core[B]) prepareSQLDBClients() error {
	c.BackendSQLDBClients = make(map[string]sqldb.Client)

	// Registering Supported Implementations
	pgsql.Register()
	mysql.Register()

	// Prepare New Clients
	for dbName, sqlDBConf := range c.SQLDBConfs {
		dbClient, err := sqldb.New(sqlDBConf.Type, sqlDBConf)
		if err != nil {
			return err
		}
		if err = dbClient.Init(); err != nil {
			return err
		}
		c.BackendSQLDBClients[dbName] = dbClient
	}
	return nil
}

// PrepareSQLDatabases for SQL DB Clients. No SQL config file means the
// app runs without a SQL backend.
func (c *Core[B]) PrepareSQLDatabases() error {
	err := c.loadSQLDBConfs()
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("[INFO] no SQL databases configured")
			return nil
		}
		return err
	}
	if len(c.SQLDBConfs) == 0 {
		return nil
	}
	return c.prepareSQLDBClients()
}

// PreparePrintShops builds a new printshops.Conf map and swaps the
// atomic pointer, so this can be invoked to Hot-Reload the registry.
func (c *Core[B]) PreparePrintShops() error {
	var (
		err      error
		newShops printshops.Registry
	)
	if newShops, err = c.newPrintShopsConfMapFromFile(); err != nil {
		return err
	}
	c.PrintShops.Store(&newShops) // atomic store
	return nil
}

func (c *Core[B]) newPrintShopsConfMapFromFile() (printshops.Registry, error) {
	confFilePath := filepath.Join(c.AppRoot, "config", ".printshops.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return nil, err
	}
	var confMap printshops.Registry
	if err = json.Unmarshal(confBytes, &confMap); err != nil {
		return nil, err
	}
	return confMap, nil
}

// GetPrintShopConf reads a printshops.Conf
// Uses a single atomic cpu instruction
func (c *Core[B]) GetPrintShopConf(id string) (printshops.Conf, bool) {
	confMapPtr := c.PrintShops.Load()
	if confMapPtr == nil {
		return printshops.Conf{}, false
	}
	conf, ok := (*confMapPtr)[id]
	conf.ID = id
	return conf, ok
}

// PrepareWebSessions prepares WebSessionManager
// Prerequisite: BackendKVDBClient
// Prerequisite: SessionLocks
func (c *Core[B]) PrepareWebSessions() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".web-session.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if c.BackendKVDBClient == nil {
		return errors.New("backend KVDB client not ready")
	}
	if c.SessionLocks == nil {
		return errors.New("sessionlocks not ready")
	}
	mgr := &session.Manager{
		AppName:           c.AppName,
		BackendKVDBClient: c.BackendKVDBClient,
		SessionLocks:      c.SessionLocks,
	}
	if err = json.Unmarshal(confBytes, &mgr.Conf); err != nil {
		return err
	}
	// Web Login Session Cipher
	cipher, err := sec.NewXChaCha20Poly1305CipherBase64([]byte(mgr.Conf.EncryptionKey))
	if err != nil {
		return fmt.Errorf("NewXChaCha20Poly1305Cipher: %v", err)
	}
	mgr.Cipher = cipher

	c.WebSessionManager = mgr
	return nil
}

// PrepareMainBackendClient to Send Request to the Main Backend API if any
// Prerequisite: BackendHttpClient
func (c *Core[B]) PrepareMainBackendClient() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".main-backend-api.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if c.BackendHttpClient == nil {
		return errors.New("backend http client not ready")
	}
	c.MainBackendClient = &mainbackend.Client{
		Client: c.BackendHttpClient,
		Conf:   &mainbackend.Conf{},
	}
	if err = json.Unmarshal(confBytes, c.MainBackendClient.Conf); err != nil {
		return err
	}
	return nil
}

func (c *Core[B]) PrepareHTMLTemplateStore() error {
	c.HTMLTemplateStore = tpl.NewHTMLTemplateStore()
	return c.HTMLTemplateStore.LoadBaseTemplates(
		filepath.Join(c.AppRoot, "templates", "html"),
	)
}

// PrepareDesignCatalog loads the design catalog from StorageConf's
// design dir. watch = hot-reload the dir through a watcher service.
// Prerequisite: LoadStorageConf
func (c *Core[B]) PrepareDesignCatalog(watch bool) error {
	if c.StorageConf.DesignDir == "" {
		return errors.New("storage conf has no design dir")
	}
	dir := c.StorageConf.DesignDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.AppRoot, dir)
	}
	store := catalog.NewDirStore(dir)
	if err := store.Load(); err != nil {
		return err
	}
	c.DesignCatalog = store
	if watch {
		c.CatalogWatcher = catalog.NewWatcher(store)
		c.AddService(c.CatalogWatcher)
	}
	return nil
}

// PrepareSQLDesignCatalog serves designs from a SQL backend instead of
// a directory.
// Prerequisite: PrepareSQLDatabases
func (c *Core[B]) PrepareSQLDesignCatalog(dbName string) error {
	dbClient, ok := c.BackendSQLDBClients[dbName]
	if !ok {
		return fmt.Errorf("no SQL DB client named %q", dbName)
	}
	store := catalog.NewSQLStore(dbClient.GetHandle())
	if err := store.Load(c.RootCtx); err != nil {
		return err
	}
	c.DesignCatalog = store
	return nil
}

// PrepareImageCache builds the logo cache. With a KVDB client present
// the cache is shared through it, otherwise it stays in-process and a
// sweep job goes on the scheduler.
// Prerequisite (optional): BackendKVDBClient, JobScheduler
func (c *Core[B]) PrepareImageCache(capacity int, ttl time.Duration) {
	if c.BackendKVDBClient != nil {
		c.ImageCache = imgcache.NewKVCache(c.BackendKVDBClient, ttl)
		return
	}
	mem := imgcache.NewMemoryCache(capacity, ttl)
	c.ImageCache = mem
	if c.JobScheduler != nil {
		job := schedjobs.NewEveryMinEmptyCronJob("imgcache-sweep")
		// every 5 minutes is plenty for expiry sweeps
		job.Minutes = schedjobs.BitsFromMinutes([]int{0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55})
		job.Task = func() error {
			mem.Sweep()
			return nil
		}
		c.JobScheduler.AddCronJob(job)
	}
}

// PrepareLogoFetcher serves logo bytes from StorageConf.LogoDir through
// the image cache. Logo IDs are flattened to a bare file name so a
// crafted ID cannot walk out of the directory.
// Prerequisite: LoadStorageConf, PrepareImageCache
func (c *Core[B]) PrepareLogoFetcher() error {
	if c.StorageConf.LogoDir == "" {
		log.Println("[INFO] no logo store configured")
		return nil
	}
	if c.ImageCache == nil {
		return errors.New("image cache not ready")
	}
	dir := c.StorageConf.LogoDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.AppRoot, dir)
	}
	c.LogoFetcher = imgcache.NewFetcher(c.ImageCache, func(_ context.Context, key string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, filepath.Base(key)))
	})
	return nil
}

// PrepareAssembler wires the sheet assembler over the fpdf canvas.
// StorageConf.FontDir, when set, is loaded onto every fresh canvas so
// designs can name shipped fonts.
func (c *Core[B]) PrepareAssembler(adjust *layout.ColumnAdjust) {
	fontDir := c.StorageConf.FontDir
	c.Assembler = sheets.NewAssembler(func() (pdfs.Canvas, error) {
		canvas := fpdfcanvas.NewCanvas(pdfs.LetterSize)
		if fontDir != "" {
			if err := canvas.RegisterFontDir(fontDir); err != nil {
				return nil, err
			}
		}
		return canvas, nil
	})
	c.Assembler.Adjust = adjust
}

// PrepareCapturer connects the DOM-capture backend. Optional: apps
// without a preview front end skip it.
func (c *Core[B]) PrepareCapturer() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".capture.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("[INFO] no capture backend configured")
			return nil
		}
		return err
	}
	captureConf := &capture.Conf{}
	if err = json.Unmarshal(confBytes, captureConf); err != nil {
		return err
	}
	c.Capturer = capture.NewCapturer(captureConf)
	return c.Capturer.Connect()
}

// PrepareMailer wires SMTP delivery of finished jobs. Optional.
func (c *Core[B]) PrepareMailer() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".smtp.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("[INFO] no mail delivery configured")
			return nil
		}
		return err
	}
	mailConf := &delivery.Conf{}
	if err = json.Unmarshal(confBytes, mailConf); err != nil {
		return err
	}
	c.Mailer = delivery.NewMailer(mailConf)
	return nil
}

// PrepareVerificationKeys loads the RSA public keys bearer tokens are
// checked against: from the main backend's JWKS endpoint when
// configured, else from the local keystore dir.
// Prerequisite: LoadStorageConf (local) or PrepareMainBackendClient (remote)
func (c *Core[B]) PrepareVerificationKeys() error {
	if c.MainBackendClient != nil {
		jwks, err := c.MainBackendClient.GetJWKS(c.RootCtx)
		if err != nil {
			return fmt.Errorf("fetching JWKS: %w", err)
		}
		c.VerificationKeys = jwks
		return nil
	}
	if c.StorageConf.KeyStore.PublicKeyDir == "" {
		return errors.New("no JWKS source configured")
	}
	dir := c.StorageConf.KeyStore.PublicKeyDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.AppRoot, dir)
	}
	jwks, err := sec.LoadPublicPEMKeysAsJWKS(dir)
	if err != nil {
		return fmt.Errorf("loading PEM keys: %w", err)
	}
	c.VerificationKeys = jwks
	return nil
}

func (c *Core[B]) ResourceCleanUp() {
	log.Println("[INFO] App Resource Cleaning Up...")
	if c.Capturer != nil {
		if err := c.Capturer.Close(); err != nil {
			log.Printf("[ERROR] Failed to close capture browser: %v", err)
		}
	}
	if c.BackendKVDBClient != nil {
		if err := c.BackendKVDBClient.Close(); err != nil {
			log.Println("[ERROR] Failed to close KV database client")
		}
	}
	for name, sqlDBClient := range c.BackendSQLDBClients {
		dbType := sqlDBClient.GetConf().Type
		log.Printf("[INFO][%s] Closing %q SQL DB client", dbType, name)
		err := sqlDBClient.Close()
		if err != nil {
			log.Printf("[ERROR][%s] Failed to close %q SQL DB client", dbType, name)
		} else {
			log.Printf("[INFO][%s] %q SQL DB client closed", dbType, name)
		}
	}
	log.Println("[INFO] App Resource Cleanup Complete")
}
