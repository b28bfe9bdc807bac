package manager

import (
	"time"

	"github.com/rs/zerolog"

	"tourismd/internal/device"
)

// FallbackModel is loaded when the primary model cannot be constructed.
const FallbackModel = "typeform/distilbert-base-uncased-mnli"

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultPrimaryModel = "facebook/bart-large-mnli"
	defaultMaxWait      = 30 * time.Second
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Loader         Loader
	DefaultVariant Variant
	PrimaryModel   string
	Device         device.Device
	Token          string
	// FineTunedModelPath is reported in Status; the variant cannot be loaded.
	FineTunedModelPath string
	// MaxConcurrency caps parallel Classify calls per backend. Zero defers to
	// the backend's declared concurrency, or 1 when it declares none.
	MaxConcurrency int
	// MaxWait bounds how long a prediction waits for admission.
	MaxWait time.Duration
	// LoadTimeout bounds a single initialization (primary plus fallback).
	LoadTimeout time.Duration
	Cache       Cache
	Publisher   EventPublisher
	Logger      *zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		loader:             cfg.Loader,
		defaultVariant:     cfg.DefaultVariant,
		primaryModel:       cfg.PrimaryModel,
		fallbackModel:      FallbackModel,
		device:             cfg.Device,
		token:              cfg.Token,
		fineTunedModelPath: cfg.FineTunedModelPath,
		maxConcurrency:     cfg.MaxConcurrency,
		maxWait:            cfg.MaxWait,
		loadTimeout:        cfg.LoadTimeout,
		cache:              cfg.Cache,
		publisher:          cfg.Publisher,
		startTime:          time.Now(),
	}
	if m.defaultVariant == "" {
		m.defaultVariant = VariantZeroShot
	}
	if m.primaryModel == "" {
		m.primaryModel = defaultPrimaryModel
	}
	if m.device == "" {
		m.device = device.CPU
	}
	if m.maxWait <= 0 {
		m.maxWait = defaultMaxWait
	}
	if m.cache == nil {
		m.cache = noopCache{}
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	if cfg.Logger != nil {
		m.log = cfg.Logger.With().Str("component", "manager").Logger()
	} else {
		m.log = zerolog.Nop()
	}
	return m
}
