package model

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Options controls the NMF optimizer
type Options struct {
	Topics         int     // factorization rank k
	MaxIterations  int     // unconditional iteration ceiling
	Tolerance      float64 // relative-improvement convergence threshold
	Regularization float64 // lambda added to update denominators
	Epsilon        float64 // division-by-zero floor
	Seed           int64   // 0 means seed from the clock
}

// Factors holds the result of a factorization V ~= W*H
type Factors struct {
	W            *mat.Dense // document-topic weights (docs x k), nil for an empty corpus
	H            *mat.Dense // topic-term weights (k x terms), nil for an empty corpus
	Iterations   int
	Converged    bool
	InitialError float64
	FinalError   float64
}

// Factorize decomposes a non-negative matrix into W (docs x k) and
// H (k x terms) using Lee-Seung multiplicative updates. H is updated with
// the pre-update W, then W with the just-updated H. Entries stay
// non-negative by construction: both factors start positive and every
// update multiplies by a ratio of non-negative sums plus positive constants.
//
// A nil input matrix (empty corpus or vocabulary) yields empty factors
// marked converged.
func Factorize(v *mat.Dense, opts Options) (*Factors, error) {
	if opts.Topics <= 0 {
		return nil, ErrInvalidTopicCount
	}
	if opts.MaxIterations <= 0 {
		return nil, ErrInvalidIterations
	}
	if v == nil {
		return &Factors{Converged: true}, nil
	}

	numDocs, vocabSize := v.Dims()
	k := opts.Topics
	floor := opts.Regularization + opts.Epsilon

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Strictly positive init avoids zero-lock in the multiplicative updates
	w := randomDense(numDocs, k, rng)
	h := randomDense(k, vocabSize, rng)

	result := &Factors{W: w, H: h}
	var prevError float64

	for iter := 0; iter < opts.MaxIterations; iter++ {
		result.Iterations = iter + 1

		// H <- H .* (W'V) ./ (W'WH + lambda + eps)
		var wh, numH, denH mat.Dense
		wh.Mul(w, h)
		numH.Mul(w.T(), v)
		denH.Mul(w.T(), &wh)
		addConst(&denH, floor)
		var ratioH mat.Dense
		ratioH.DivElem(&numH, &denH)
		h.MulElem(h, &ratioH)

		// W <- W .* (VH') ./ (WHH' + lambda + eps)
		var wh2, numW, denW mat.Dense
		wh2.Mul(w, h)
		numW.Mul(v, h.T())
		denW.Mul(&wh2, h.T())
		addConst(&denW, floor)
		var ratioW mat.Dense
		ratioW.DivElem(&numW, &denW)
		w.MulElem(w, &ratioW)

		// Squared Frobenius norm of the reconstruction residual
		var recon, residual mat.Dense
		recon.Mul(w, h)
		residual.Sub(v, &recon)
		frob := mat.Norm(&residual, 2)
		errNow := frob * frob
		result.FinalError = errNow

		if iter == 0 {
			result.InitialError = errNow
			prevError = errNow
			if errNow == 0 {
				// Perfect reconstruction at the baseline; the relative
				// check would divide by zero
				result.Converged = true
				break
			}
			continue
		}

		improvement := (prevError - errNow) / result.InitialError
		prevError = errNow
		if improvement < opts.Tolerance {
			result.Converged = true
			break
		}
	}

	return result, nil
}

// randomDense fills a matrix with uniform values in [0.1, 1.0)
func randomDense(rows, cols int, rng *rand.Rand) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = 0.1 + 0.9*rng.Float64()
	}
	return mat.NewDense(rows, cols, data)
}

// addConst shifts every entry of a matrix by c
func addConst(m *mat.Dense, c float64) {
	m.Apply(func(_, _ int, v float64) float64 { return v + c }, m)
}
