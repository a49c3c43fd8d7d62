package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/client/backup"
	"github.com/dmitrijs2005/eldercare/internal/client/config"
	"github.com/dmitrijs2005/eldercare/internal/client/reminders"
	"github.com/dmitrijs2005/eldercare/internal/client/services"
	"github.com/dmitrijs2005/eldercare/internal/client/storage"
	"github.com/dmitrijs2005/eldercare/internal/client/vitals"
	"github.com/dmitrijs2005/eldercare/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	store  storage.Adapter

	session   *services.SessionService
	medicines *services.MedicineService
	appts     *services.AppointmentService
	profile   *services.ProfileService
	location  *services.LocationService
	hospitals services.HospitalDirectory
	sos       *services.SOSService

	monitor   *vitals.Monitor
	history   *vitals.History
	reminders *reminders.Scheduler
	backups   backup.Store

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the configured storage backend and builds every service on
// top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, c.StorageOptions(), log)
	if err != nil {
		log.Error(ctx, "error opening storage", "backend", c.Backend, "err", err)
		return nil, err
	}

	var tokens services.TokenStore
	if c.SecureToken {
		ks, err := newKeyringTokenStore(c)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		tokens = ks
	}

	backups, err := newBackupStore(ctx, c)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a := newApp(c, store, tokens, backups, log, bufio.NewReader(os.Stdin), os.Stdout)
	if c.RemindersEnabled {
		a.enableReminders(ctx)
	}
	return a, nil
}

// newKeyringTokenStore keys the keyring account by install id so separate
// data directories keep separate sessions.
func newKeyringTokenStore(c *config.Config) (*services.KeyringTokenStore, error) {
	id, err := backup.InstallID(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("install id: %w", err)
	}
	return services.NewKeyringTokenStore("session-" + id), nil
}

func newBackupStore(ctx context.Context, c *config.Config) (backup.Store, error) {
	if !c.S3().Enabled() {
		return backup.NewFileStore(filepath.Join(c.DataDir, "backups")), nil
	}
	id, err := backup.InstallID(c.DataDir)
	if err != nil {
		return nil, err
	}
	return backup.NewS3Store(ctx, c.S3(), id)
}

func newApp(c *config.Config, store storage.Adapter, tokens services.TokenStore, backups backup.Store, log logging.Logger, r *bufio.Reader, w io.Writer) *App {
	profile := services.NewProfileService(store, log)
	location := services.NewLocationService(store, log)

	return &App{
		config:    c,
		log:       log,
		store:     store,
		session:   services.NewSessionService(store, tokens, log),
		medicines: services.NewMedicineService(store, log, nil),
		appts:     services.NewAppointmentService(store, log, nil),
		profile:   profile,
		location:  location,
		sos:       services.NewSOSService(profile, location, log, nil),
		monitor:   vitals.NewMonitor(c.VitalsInterval),
		history:   vitals.NewHistory(vitals.HistorySize),
		backups:   backups,
		reader:    r,
		out:       w,
		now:       time.Now,
	}
}

func (a *App) enableReminders(ctx context.Context) {
	a.reminders = reminders.NewScheduler(reminders.NotifierFunc(a.notify), a.log)
	if err := a.reminders.ResetDaily(a.medicines.ResetTaken); err != nil {
		a.log.Warn(ctx, "daily reset not scheduled", "err", err)
	}
}

func (a *App) notify(_ context.Context, r reminders.Reminder) {
	fmt.Fprintf(a.out, "\nReminder: time to take %s %s\n", r.Name, r.Dosage)
}

// syncReminders reschedules reminders after the medicine list changed.
func (a *App) syncReminders(ctx context.Context) {
	if a.reminders == nil {
		return
	}
	meds, err := a.medicines.List(ctx)
	if err != nil {
		a.log.Warn(ctx, "reminders not updated", "err", err)
		return
	}
	a.reminders.Sync(ctx, meds)
}

// Run starts background jobs and the REPL, and closes the storage adapter
// when the user leaves.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	defer func() {
		if err := a.store.Close(); err != nil {
			a.log.Error(ctx, "error closing storage", "err", err)
		}
	}()

	go a.collectVitals(ctx)

	if a.reminders != nil {
		a.syncReminders(ctx)
		a.reminders.Start(ctx)
		defer a.reminders.Stop()
	}

	a.greet(ctx)
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
	return nil
}

// collectVitals feeds simulated heart-rate readings into the history until
// ctx is done.
func (a *App) collectVitals(ctx context.Context) {
	for r := range a.monitor.Start(ctx) {
		a.history.Add(r)
		if vitals.Classify(r.Rate) != vitals.StatusNormal {
			a.log.Warn(ctx, "abnormal heart rate", "bpm", r.Rate)
		}
	}
}

func (a *App) greet(ctx context.Context) {
	fmt.Fprintln(a.out, "ElderCare (type 'help' for commands)")

	switch a.session.InitialRoute(ctx) {
	case services.RouteWelcome:
		fmt.Fprintln(a.out, "Welcome! Type 'welcome' to get started.")
	case services.RouteLogin:
		fmt.Fprintln(a.out, "Please 'login', or try the app with 'demo'.")
	case services.RouteMain:
		if email, ok, _ := a.session.CurrentUser(ctx); ok {
			fmt.Fprintf(a.out, "Welcome back, %s.\n", email)
		}
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, ok, err := a.session.CurrentUser(ctx)
	return err == nil && ok
}

func (a *App) getStatus(ctx context.Context) string {
	s := string(a.store.Backend())
	if email, ok, err := a.session.CurrentUser(ctx); err == nil && ok {
		s = email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}
