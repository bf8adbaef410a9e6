package httpx

type Option func(*LoggingRoundTripper)

func WithLogFieldMaxLen(logFieldMaxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = logFieldMaxLen
	}
}

func WithSensitiveDataMasker(sensitiveDataMasker sensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = sensitiveDataMasker
	}
}

// WithResponseBody toggles dumping response bodies. Status line and headers
// are always logged.
func WithResponseBody(enabled bool) Option {
	return func(rt *LoggingRoundTripper) {
		rt.dumpResponseBody = enabled
	}
}
