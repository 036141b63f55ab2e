package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// Store errors
	CodePersistFailed      Code = "PERSIST_FAILED"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded  Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Domain error codes
const (
	// Reference data
	CodeExchangeNotFound   Code = "EXCHANGE_NOT_FOUND"
	CodeAssetNotFound      Code = "ASSET_NOT_FOUND"
	CodeMarketPairNotFound Code = "MARKET_PAIR_NOT_FOUND"

	// Strategies
	CodeStrategyNotFound     Code = "STRATEGY_NOT_FOUND"
	CodeInvalidReference     Code = "INVALID_REFERENCE"
	CodeDuplicatePair        Code = "DUPLICATE_PAIR"
	CodeInvalidArbitrageType Code = "INVALID_ARBITRAGE_TYPE"

	// Suggestions
	CodeSuggestionNotImplemented Code = "SUGGESTION_NOT_IMPLEMENTED"
	CodeSuggestionScanFailed     Code = "SUGGESTION_SCAN_FAILED"

	// Circuit breaker
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
