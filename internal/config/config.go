package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the topic modeling service
type Config struct {
	Corpus  CorpusConfig
	Storage StorageConfig
	Model   ModelConfig
	Report  ReportConfig
	Bench   BenchConfig
}

// CorpusConfig holds preprocessing configuration
type CorpusConfig struct {
	StopwordsFile string
	MinTokenLen   int
}

// StorageConfig holds token corpus storage configuration
type StorageConfig struct {
	TokensFile        string
	FilesFile         string
	DistributionsFile string
}

// ModelConfig holds vocabulary and NMF optimizer configuration
type ModelConfig struct {
	MinDocFreq     int
	Topics         int
	MaxIterations  int
	Tolerance      float64
	Regularization float64
	Epsilon        float64
	Seed           int64
}

// ReportConfig holds topic reporting configuration
type ReportConfig struct {
	TopTerms        int
	WeightThreshold float64
}

// BenchConfig holds batch harness configuration
type BenchConfig struct {
	SamplesRoot string
	SampleSizes []int
	Iterations  int
	Datasets    int
	MetricsDir  string
	SkipMissing bool
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Corpus: CorpusConfig{
			StopwordsFile: GetStringEnv("CORPUS_STOPWORDS_FILE", "stopwords.txt"),
			MinTokenLen:   GetIntEnv("CORPUS_MIN_TOKEN_LEN", 1),
		},
		Storage: StorageConfig{
			TokensFile:        GetStringEnv("STORAGE_TOKENS_FILE", "tokens.csv"),
			FilesFile:         GetStringEnv("STORAGE_FILES_FILE", "files.csv"),
			DistributionsFile: GetStringEnv("STORAGE_DISTRIBUTIONS_FILE", "document_topic_distributions.csv"),
		},
		Model: ModelConfig{
			MinDocFreq:     GetIntEnv("MODEL_MIN_DOC_FREQ", 3),
			Topics:         GetIntEnv("MODEL_TOPICS", 5),
			MaxIterations:  GetIntEnv("MODEL_MAX_ITERATIONS", 200),
			Tolerance:      GetFloatEnv("MODEL_TOLERANCE", 1e-4),
			Regularization: GetFloatEnv("MODEL_REGULARIZATION", 0.01),
			Epsilon:        GetFloatEnv("MODEL_EPSILON", 1e-10),
			Seed:           GetInt64Env("MODEL_SEED", 0),
		},
		Report: ReportConfig{
			TopTerms:        GetIntEnv("REPORT_TOP_TERMS", 10),
			WeightThreshold: GetFloatEnv("REPORT_WEIGHT_THRESHOLD", 0.001),
		},
		Bench: BenchConfig{
			SamplesRoot: GetStringEnv("BENCH_SAMPLES_ROOT", "bootstrap_samples"),
			SampleSizes: GetIntListEnv("BENCH_SAMPLE_SIZES", []int{100, 250, 500, 750, 1000}),
			Iterations:  GetIntEnv("BENCH_ITERATIONS", 5),
			Datasets:    GetIntEnv("BENCH_DATASETS", 100),
			MetricsDir:  GetStringEnv("BENCH_METRICS_DIR", "metrics"),
			SkipMissing: GetBoolEnv("BENCH_SKIP_MISSING", true),
		},
	}
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// GetIntListEnv parses a comma-separated list of integers
func GetIntListEnv(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var result []int
	for _, part := range strings.Split(value, ",") {
		intValue, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		result = append(result, intValue)
	}
	return result
}
