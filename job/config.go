package job

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config supplies the values a Job uses for each run. Get is called once at
// the start of every run, so an implementation may change its values between
// runs. If the values can change while a Job is in use, Get must be safe for
// concurrent use.
type Config interface {
	// Get returns the values for the next run.
	Get() ConfigValues
}

// ConfigValues controls how a run spawns and supervises its workers. The zero
// value is a valid configuration: no worker cap, every worker on its own
// dedicated OS thread, and a failing worker does not stop the others.
type ConfigValues struct {
	// MaxWorkers caps the number of workers requested for a run before the
	// plan's own clamping to [1, n] applies. Zero means no cap.
	MaxWorkers int `json:"maxWorkers" validate:"gte=0"`

	// StopOnError cancels the remaining workers as soon as one worker fails.
	// Cancelled siblings stop at their next element boundary. The run still
	// reports the failure, not the cancellation.
	StopOnError bool `json:"stopOnError"`

	// SharedThreads runs workers as ordinary goroutines on the runtime's
	// shared threads. By default each worker locks a dedicated OS thread that
	// is discarded when the worker returns.
	SharedThreads bool `json:"sharedThreads"`

	// PinThreads binds worker i to the (i mod len(CPUs))-th CPU the process
	// may run on. It requires dedicated threads, so it cannot be combined with
	// SharedThreads. If pinning fails the worker logs a warning and runs
	// unpinned.
	PinThreads bool `json:"pinThreads" validate:"excluded_with=SharedThreads"`
}

// Validate reports whether the values are usable.
func (c ConfigValues) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("job: invalid config: %w", err)
	}
	return nil
}

// NewConstantConfig returns a Config with constant values. If values is nil,
// the zero ConfigValues are used.
func NewConstantConfig(values *ConfigValues) *ConstantConfig {
	if values == nil {
		return &ConstantConfig{}
	}

	return &ConstantConfig{
		values: *values,
	}
}

// ConstantConfig is a Config whose values never change. Create one with
// NewConstantConfig.
type ConstantConfig struct {
	values ConfigValues
}

// Get implements the Config interface.
func (c *ConstantConfig) Get() ConfigValues {
	return c.values
}

// NewDynamicConfig returns a Config whose values can be changed while Jobs
// use it. Changes take effect at the start of the next run. If values is nil,
// the zero ConfigValues are used.
func NewDynamicConfig(values *ConfigValues) *DynamicConfig {
	if values == nil {
		return &DynamicConfig{}
	}

	return &DynamicConfig{
		values: *values,
	}
}

// DynamicConfig is a Config that is safe to update concurrently.
type DynamicConfig struct {
	mu     sync.RWMutex
	values ConfigValues
}

// Get implements the Config interface.
func (c *DynamicConfig) Get() ConfigValues {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values
}

// UpdateMaxWorkers changes the worker cap.
func (c *DynamicConfig) UpdateMaxWorkers(maxWorkers int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values.MaxWorkers = maxWorkers
}

// UpdateStopOnError changes whether a failing worker stops its siblings.
func (c *DynamicConfig) UpdateStopOnError(stop bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values.StopOnError = stop
}

// Update replaces all values at once.
func (c *DynamicConfig) Update(values ConfigValues) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = values
}
