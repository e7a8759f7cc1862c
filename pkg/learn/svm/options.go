package svm

// Option applies a configuration option to an SVC.
type Option func(*SVC)

// WithKernel selects the kernel. Unknown kernels are rejected by Fit.
func WithKernel(k Kernel) Option {
	return func(s *SVC) {
		if k != "" {
			s.kernel = k
		}
	}
}

// WithC sets the inverse regularization strength.
func WithC(c float64) Option {
	return func(s *SVC) {
		if c > 0 {
			s.c = c
		}
	}
}

// WithGamma sets the RBF kernel width. Zero selects 1/(features*var(X)).
func WithGamma(gamma float64) Option {
	return func(s *SVC) {
		if gamma >= 0 {
			s.gamma = gamma
		}
	}
}

// WithEpochs sets the number of passes over the training set.
func WithEpochs(epochs int) Option {
	return func(s *SVC) {
		if epochs > 0 {
			s.epochs = epochs
		}
	}
}

// WithComponents sets the number of random Fourier features used to
// approximate the RBF kernel.
func WithComponents(n int) Option {
	return func(s *SVC) {
		if n > 0 {
			s.components = n
		}
	}
}

// WithSeed fixes the random source used for sampling and projections.
func WithSeed(seed int64) Option {
	return func(s *SVC) {
		s.seed = seed
	}
}
