package engine

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"

	"github.com/topic-engine/backend/internal/config"
	"github.com/topic-engine/backend/internal/corpus"
	"github.com/topic-engine/backend/internal/model"
	"github.com/topic-engine/backend/internal/report"
	"github.com/topic-engine/backend/internal/storage"
)

// Engine orchestrates the topic modeling pipeline
type Engine struct {
	Config  *config.Config
	Logger  *logrus.Entry
	Storage storage.CorpusStorage
	Reader  *corpus.Reader
}

// NewEngine wires the pipeline components together. A missing stopword
// file is not fatal; preprocessing then runs without stopword filtering.
func NewEngine(cfg *config.Config, logger *logrus.Entry, store storage.CorpusStorage) (*Engine, error) {
	stopwords, err := corpus.LoadStopwords(cfg.Corpus.StopwordsFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		logger.WithField("file", cfg.Corpus.StopwordsFile).Warn("Stopword file not found, continuing without stopword filtering")
		stopwords = nil
	}

	tokenizer := corpus.NewTokenizer(stopwords, cfg.Corpus.MinTokenLen)

	return &Engine{
		Config:  cfg,
		Logger:  logger,
		Storage: store,
		Reader:  corpus.NewReader(tokenizer),
	}, nil
}

// Preprocess walks the input directory, tokenizes every document and
// persists the tokenized corpus. Returns the number of documents processed.
func (e *Engine) Preprocess(inputDir string) (int, error) {
	e.Logger.WithField("input", inputDir).Info("Starting preprocessing")

	documents, err := e.Reader.ReadDir(inputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read corpus: %w", err)
	}

	if err := e.Storage.Save(documents); err != nil {
		return 0, fmt.Errorf("failed to save corpus: %w", err)
	}

	e.Logger.WithField("documents", len(documents)).Info("Preprocessing completed")
	return len(documents), nil
}

// Model loads the tokenized corpus, builds the vocabulary and TF-IDF
// matrix, factorizes it and writes the outputs. Returns the topic labels.
func (e *Engine) Model() ([]string, error) {
	documents, err := e.Storage.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	tokenLists := make([][]string, len(documents))
	for i, doc := range documents {
		tokenLists[i] = doc.Tokens
	}

	// 1. Vocabulary
	vocab := model.BuildVocabulary(tokenLists, e.Config.Model.MinDocFreq)
	e.Logger.WithFields(logrus.Fields{
		"documents": len(documents),
		"terms":     vocab.Size(),
	}).Info("Vocabulary built")

	// 2. TF-IDF matrix
	tfidf := model.Encode(tokenLists, vocab)

	// 3. Factorization
	factors, err := model.Factorize(tfidf, model.Options{
		Topics:         e.Config.Model.Topics,
		MaxIterations:  e.Config.Model.MaxIterations,
		Tolerance:      e.Config.Model.Tolerance,
		Regularization: e.Config.Model.Regularization,
		Epsilon:        e.Config.Model.Epsilon,
		Seed:           e.Config.Model.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("factorization failed: %w", err)
	}
	e.Logger.WithFields(logrus.Fields{
		"iterations": factors.Iterations,
		"converged":  factors.Converged,
		"error":      factors.FinalError,
	}).Info("Factorization finished")

	// 4. Reports
	if err := report.SaveDistributions(
		e.Config.Storage.DistributionsFile,
		factors.W, len(documents), e.Config.Model.Topics,
	); err != nil {
		return nil, err
	}

	topics := report.Topics(
		factors.H, vocab,
		e.Config.Model.Topics,
		e.Config.Report.TopTerms,
		e.Config.Report.WeightThreshold,
	)
	return topics, nil
}

// Run executes both pipeline steps in order
func (e *Engine) Run(inputDir string) ([]string, error) {
	if _, err := e.Preprocess(inputDir); err != nil {
		return nil, err
	}
	return e.Model()
}
