package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// Store errors
	CodePersistFailed:      "Store operation failed",
	CodeServiceUnavailable: "Service temporarily unavailable",
	CodeRateLimitExceeded:  "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Reference data
	CodeExchangeNotFound:   "Exchange not found",
	CodeAssetNotFound:      "Asset not found",
	CodeMarketPairNotFound: "Market pair not found",

	// Strategies
	CodeStrategyNotFound:     "Arbitrage strategy not found",
	CodeInvalidReference:     "Invalid market pair reference",
	CodeDuplicatePair:        "All pairs must be different",
	CodeInvalidArbitrageType: "Unknown arbitrage type",

	// Suggestions
	CodeSuggestionNotImplemented: "Strategy type not implemented",
	CodeSuggestionScanFailed:     "Suggestion scan failed",

	// Circuit breaker
	CodeCircuitOpen: "Circuit breaker is open",
}
