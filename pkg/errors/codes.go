package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
// Codes are grouped by module prefix: COMMON (shared), CONF (conformation
// grammar), GEO (geometry/angles), ANA (analysis), EXP (export).
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeInvalidArgument ErrorCode = "COMMON_002"
)

// Conformation grammar error codes.
const (
	ErrCodeConformationEmpty     ErrorCode = "CONF_001"
	ErrCodeConformationOddLength ErrorCode = "CONF_002"
	ErrCodeConformationBadToken  ErrorCode = "CONF_003"
	ErrCodeConformationBadBridge ErrorCode = "CONF_004"
	ErrCodeRingNameUnknown       ErrorCode = "CONF_005"
)

// Geometry error codes.
const (
	ErrCodeThetaOutOfRange   ErrorCode = "GEO_001"
	ErrCodeLigandTypeInvalid ErrorCode = "GEO_002"
)

// Analysis error codes.
const (
	ErrCodeThetaGridInvalid  ErrorCode = "ANA_001"
	ErrCodeSweepInputMissing ErrorCode = "ANA_002"
	ErrCodeSweepCanceled     ErrorCode = "ANA_003"
)

// Export error codes.
const (
	ErrCodeExportDirFailed    ErrorCode = "EXP_001"
	ErrCodeExportWriteFailed  ErrorCode = "EXP_002"
	ErrCodeExportEncodeFailed ErrorCode = "EXP_003"
)

// Short aliases used at call sites throughout the codebase.
const (
	CodeInternal        = ErrCodeInternal
	CodeInvalidArgument = ErrCodeInvalidArgument

	CodeConformationEmpty     = ErrCodeConformationEmpty
	CodeConformationOddLength = ErrCodeConformationOddLength
	CodeConformationBadToken  = ErrCodeConformationBadToken
	CodeConformationBadBridge = ErrCodeConformationBadBridge
	CodeRingNameUnknown       = ErrCodeRingNameUnknown

	CodeThetaOutOfRange   = ErrCodeThetaOutOfRange
	CodeLigandTypeInvalid = ErrCodeLigandTypeInvalid

	CodeThetaGridInvalid  = ErrCodeThetaGridInvalid
	CodeSweepInputMissing = ErrCodeSweepInputMissing
	CodeSweepCanceled     = ErrCodeSweepCanceled

	CodeExportDirFailed    = ErrCodeExportDirFailed
	CodeExportWriteFailed  = ErrCodeExportWriteFailed
	CodeExportEncodeFailed = ErrCodeExportEncodeFailed

	CodeOK      = ErrorCode("OK")
	CodeUnknown = ErrorCode("UNKNOWN")
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:        "internal error",
	ErrCodeInvalidArgument: "invalid argument",

	ErrCodeConformationEmpty:     "conformation contains no ligand tokens",
	ErrCodeConformationOddLength: "conformation string has odd length",
	ErrCodeConformationBadToken:  "unrecognized conformation token",
	ErrCodeConformationBadBridge: "misplaced bridge token",
	ErrCodeRingNameUnknown:       "ring name not in catalog",

	ErrCodeThetaOutOfRange:   "theta outside [0, 90] degrees",
	ErrCodeLigandTypeInvalid: "invalid ligand type",

	ErrCodeThetaGridInvalid:  "invalid theta grid",
	ErrCodeSweepInputMissing: "sweep input missing conformation",
	ErrCodeSweepCanceled:     "sweep canceled",

	ErrCodeExportDirFailed:    "failed to create output directory",
	ErrCodeExportWriteFailed:  "failed to write output file",
	ErrCodeExportEncodeFailed: "failed to encode output",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsInvalidArgumentCode reports whether code belongs to the InvalidArgument
// class: caller-supplied inputs that failed eager validation.
func IsInvalidArgumentCode(code ErrorCode) bool {
	switch code {
	case ErrCodeInvalidArgument,
		ErrCodeConformationEmpty,
		ErrCodeConformationOddLength,
		ErrCodeConformationBadToken,
		ErrCodeConformationBadBridge,
		ErrCodeRingNameUnknown,
		ErrCodeThetaOutOfRange,
		ErrCodeLigandTypeInvalid,
		ErrCodeThetaGridInvalid,
		ErrCodeSweepInputMissing:
		return true
	}
	return false
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
