package log

// Option adjusts a logger configuration. Options are accepted by [Make],
// [Logger.Wrap] and [Config]; the CLI builds them from its --log-* flags,
// and the material builder receives the resulting [Logger].
type Option func(config) config

// apply folds opts over cfg in order, so a later option overrides an earlier
// one. Nil options are skipped, which lets callers pass conditionally built
// option lists.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		cfg = opt(cfg)
	}

	return cfg
}
