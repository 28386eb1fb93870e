package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/catalogq/logger"
)

// FileSystem abstracts the file and environment lookups of the loader.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	Getenv(key string) string
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file without overriding variables already set.
func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// ConfigEnvVar names the variable that points at an explicit config file,
// e.g. CATALOGQ_CONFIG.
func ConfigEnvVar(serviceName string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")) + "_CONFIG"
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles picks the config file from, in order: the explicit option,
// the <SERVICE>_CONFIG variable, the search path. The env file comes from
// the explicit option or the search path.
func (cr *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.FileSystem.Getenv(ConfigEnvVar(serviceName))
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.find(searchPaths(serviceName, "config.yml"))
	}
	if resolved.EnvFile == "" {
		paths := searchPaths(serviceName, ".env."+serviceName)
		paths = append(paths, searchPaths(serviceName, ".env")...)
		resolved.EnvFile = cr.find(paths)
	}

	return resolved
}

func (cr *Resolver) find(paths []string) string {
	for _, path := range paths {
		if cr.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// searchPaths lists where fileName may live relative to the working
// directory: next to the command, in config/, at the repo root, each
// tried from up to two levels below.
func searchPaths(serviceName, fileName string) []string {
	dirs := []string{"cmd/" + serviceName}
	if idx := strings.LastIndex(serviceName, "-"); idx != -1 {
		dirs = append(dirs, "cmd/"+serviceName[idx+1:])
	}
	dirs = append(dirs, "config/"+serviceName, "config", "")

	paths := make([]string, 0, len(dirs)*3)
	for _, dir := range dirs {
		for _, up := range []string{".", "..", "../.."} {
			if dir == "" {
				paths = append(paths, fmt.Sprintf("%s/%s", up, fileName))
				continue
			}
			paths = append(paths, fmt.Sprintf("%s/%s/%s", up, dir, fileName))
		}
	}
	return paths
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem  FileSystem
	ConfigFile  string // Direct config file path (optional)
	EnvFile     string // Direct env file path (optional)
	Defaults    map[string]any
	DecodeHooks []mapstructure.DecodeHookFunc
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithDefaults registers default values by dotted key. File and environment
// values take precedence.
func WithDefaults(defaults map[string]any) LoaderOption {
	return func(lc *LoaderConfig) {
		if lc.Defaults == nil {
			lc.Defaults = make(map[string]any, len(defaults))
		}
		for k, v := range defaults {
			lc.Defaults[k] = v
		}
	}
}

// WithDecodeHook appends a decode hook that runs before the built-in ones.
func WithDecodeHook(hook mapstructure.DecodeHookFunc) LoaderOption {
	return func(lc *LoaderConfig) { lc.DecodeHooks = append(lc.DecodeHooks, hook) }
}

// LoadConfig loads configuration for a service into cfg. Precedence, lowest
// first: defaults, config.yml, .env, process environment. A missing config
// file is not an error; an unreadable or malformed one is.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)

	return loadFromResolvedFiles(serviceName, cfg, files, lc)
}

func loadFromResolvedFiles(serviceName string, cfg interface{}, files ResolvedFiles, lc LoaderConfig) error {
	fs := lc.FileSystem
	v := viper.New()
	for k, val := range lc.Defaults {
		v.SetDefault(k, val)
	}

	if files.ConfigFile != "" && fs.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", files.ConfigFile, err)
		}
		logger.Debug("config file loaded", logger.Fields("file", files.ConfigFile))
	}

	// .env only fills variables the process does not already set.
	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			logger.Warn("failed to load .env file", logger.MergeWithError(logger.Fields("file", files.EnvFile), err))
		}
	}

	bindEnvVars(v, configRoots(cfg))

	hooks := append([]mapstructure.DecodeHookFunc{}, lc.DecodeHooks...)
	hooks = append(hooks,
		DecimalHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(hooks...))); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}

	return nil
}

// configRoots returns the top-level keys of cfg's struct type, following
// squashed embeds. Nil means cfg is not a struct.
func configRoots(cfg interface{}) map[string]bool {
	t := reflect.TypeOf(cfg)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	roots := make(map[string]bool)
	collectRoots(t, roots)
	return roots
}

func collectRoots(t reflect.Type, roots map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if strings.Contains(opts, "squash") || (f.Anonymous && name == "") {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectRoots(ft, roots)
			}
			continue
		}
		if name == "" {
			name = f.Name
		}
		roots[strings.ToLower(name)] = true
	}
}

// bindEnvVars sets every environment variable whose name starts with a
// config root (LOGGING_LEVEL for logging.level) under each nested key form
// it could stand for. With nil roots every variable is bound.
func bindEnvVars(v *viper.Viper, roots map[string]bool) {
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !matchesRoot(strings.ToLower(key), roots) {
			continue
		}
		for _, variant := range generateEnvKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

func matchesRoot(lowerKey string, roots map[string]bool) bool {
	if roots == nil {
		return true
	}
	for root := range roots {
		if lowerKey == root || strings.HasPrefix(lowerKey, root+"_") {
			return true
		}
	}
	return false
}

// generateEnvKeyVariants creates all possible key variants for environment variable binding.
// Examples:
//
//	REPORT_TITLE -> [report_title, report.title]
//	QUERY_TAX_MULTIPLIER -> [query_tax_multiplier, query.tax.multiplier, query.tax_multiplier, query_tax.multiplier]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	// Split once at every boundary: prefix nests with dots, suffix keeps underscores.
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	// And the reverse: prefix keeps underscores, the last segment nests.
	variants = append(variants, strings.Join(parts[:len(parts)-1], "_")+"."+parts[len(parts)-1])

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
