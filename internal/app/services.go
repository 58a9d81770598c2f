package app

import (
	"errors"
	"fmt"

	"github.com/myrteametrics/goldenbatch-api/internal/batch"
	"github.com/myrteametrics/goldenbatch-api/internal/batchconfig"
	"github.com/myrteametrics/goldenbatch-api/internal/evaluator"
	"github.com/myrteametrics/goldenbatch-api/internal/handler"
	"github.com/myrteametrics/goldenbatch-api/internal/modeler"
	"github.com/myrteametrics/goldenbatch-api/internal/notifier"
	"github.com/myrteametrics/goldenbatch-api/internal/scheduler"
	"github.com/myrteametrics/goldenbatch-api/internal/simulation"
	"github.com/myrteametrics/goldenbatch-api/internal/simulator"
	"github.com/myrteametrics/goldenbatch-api/internal/tag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var errUnknownBackend = errors.New("unknown batch history backend")

// initRepositories installs every repository singleton
func initRepositories() error {
	tag.ReplaceGlobals(tag.NewSeededRepository())
	modeler.ReplaceGlobals(modeler.NewSeededRepository())
	batchconfig.ReplaceGlobals(batchconfig.NewHolder(batchconfig.Default()))
	batch.ReplaceGlobalSelection(batch.NewSelection())

	switch backend := viper.GetString("BATCH_HISTORY_BACKEND"); backend {
	case "", "mock":
		batch.ReplaceGlobals(batch.NewNativeMapRepository(batch.MockHistory(viper.GetInt("BATCH_HISTORY_MOCK_SIZE"), nil)))
	case "postgres":
		batch.ReplaceGlobals(batch.NewPostgresRepository(initPostgres()))
	default:
		return fmt.Errorf("%w: %s", errUnknownBackend, backend)
	}
	zap.L().Info("Repositories initialized", zap.String("batchHistory", viper.GetString("BATCH_HISTORY_BACKEND")))
	return nil
}

func initServices() error {
	initScheduler()
	initNotifier()
	return initSimulation()
}

func stopServices() {
	if c := simulation.C(); c != nil {
		c.Close()
	}
	if s := scheduler.S(); s != nil {
		s.Stop()
	}
}

func initScheduler() {
	scheduler.ReplaceGlobals(scheduler.NewScheduler())
	scheduler.S().Start()
}

func initNotifier() {
	n := notifier.NewNotifier()
	n.SetMessageHandler(handler.HandleViewerMessage)
	notifier.ReplaceGlobals(n)
}

func initSimulation() error {
	rules, err := evaluator.NewAlarmRules(viper.GetString("ALARM_RULE_YELLOW"), viper.GetString("ALARM_RULE_RED"))
	if err != nil {
		return err
	}

	cfg := simulationConfig()
	c, err := simulation.New(cfg, scheduler.S(), rules)
	if err != nil {
		return err
	}
	c.SetActiveModelSource(activeModel)
	c.Subscribe(handler.BroadcastSnapshot)
	simulation.ReplaceGlobals(c)

	zap.L().Info("Simulation initialized",
		zap.Int("samples", cfg.Baseline.SampleCount),
		zap.Int("cursor", cfg.InitialCursor),
		zap.Bool("autoplay", cfg.Autoplay),
		zap.Duration("tick", cfg.TickInterval),
	)
	return c.Start()
}

// simulationConfig reads the simulation settings, offset limits are symmetric
func simulationConfig() simulation.Config {
	valueLimit := viper.GetFloat64("SIMULATION_VALUE_OFFSET_LIMIT")
	boundLimit := viper.GetFloat64("SIMULATION_BOUND_OFFSET_LIMIT")
	return simulation.Config{
		Baseline: simulator.BaselineConfig{
			SampleCount: viper.GetInt("SIMULATION_SAMPLE_COUNT"),
			CenterValue: viper.GetFloat64("SIMULATION_CENTER_VALUE"),
			Amplitude:   viper.GetFloat64("SIMULATION_AMPLITUDE"),
			Period:      viper.GetFloat64("SIMULATION_PERIOD"),
			BandWidth:   viper.GetFloat64("SIMULATION_BAND_WIDTH"),
			Noise:       viper.GetFloat64("SIMULATION_NOISE"),
		},
		Seed:             viper.GetUint64("SIMULATION_SEED"),
		InitialCursor:    viper.GetInt("SIMULATION_INITIAL_CURSOR"),
		Autoplay:         viper.GetBool("SIMULATION_AUTOPLAY"),
		TickInterval:     viper.GetDuration("SIMULATION_TICK_INTERVAL"),
		SecondsPerSample: viper.GetInt("SIMULATION_SECONDS_PER_SAMPLE"),
		Limits: simulation.Limits{
			ValueOffsetMin: -valueLimit,
			ValueOffsetMax: valueLimit,
			BoundOffsetMin: -boundLimit,
			BoundOffsetMax: boundLimit,
		},
	}
}

// activeModel feeds the prediction card with the active model pair of the library
func activeModel() (simulation.ModelRef, bool) {
	r := modeler.R()
	if r == nil {
		return simulation.ModelRef{}, false
	}
	m, found, err := r.Active()
	if err != nil {
		zap.L().Warn("Cannot read active model", zap.Error(err))
		return simulation.ModelRef{}, false
	}
	if !found {
		return simulation.ModelRef{}, false
	}
	return simulation.ModelRef{ID: m.ID, Name: m.Name}, true
}
