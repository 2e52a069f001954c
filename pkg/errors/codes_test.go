package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

func TestDefaultMessageForCode_KnownCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code errors.ErrorCode
		want string
	}{
		{errors.CodeThetaOutOfRange, "theta outside [0, 90] degrees"},
		{errors.CodeConformationOddLength, "conformation string has odd length"},
		{errors.CodeExportDirFailed, "failed to create output directory"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, errors.DefaultMessageForCode(tc.code))
	}
}

func TestDefaultMessageForCode_UnknownCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown error", errors.DefaultMessageForCode(errors.ErrorCode("NOPE_999")))
}

func TestModuleForCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code errors.ErrorCode
		want string
	}{
		{"conformation module", errors.CodeConformationBadToken, "CONF"},
		{"geometry module", errors.CodeThetaOutOfRange, "GEO"},
		{"analysis module", errors.CodeThetaGridInvalid, "ANA"},
		{"export module", errors.CodeExportWriteFailed, "EXP"},
		{"common module", errors.CodeInternal, "COMMON"},
		{"empty code", errors.ErrorCode(""), "UNKNOWN"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, errors.ModuleForCode(tc.code))
		})
	}
}

func TestIsInvalidArgumentCode_ExportCodesExcluded(t *testing.T) {
	t.Parallel()

	// Filesystem failures are environmental, not caller mistakes.
	assert.False(t, errors.IsInvalidArgumentCode(errors.CodeExportDirFailed))
	assert.False(t, errors.IsInvalidArgumentCode(errors.CodeExportWriteFailed))
	assert.False(t, errors.IsInvalidArgumentCode(errors.CodeExportEncodeFailed))
	assert.False(t, errors.IsInvalidArgumentCode(errors.CodeInternal))
	assert.True(t, errors.IsInvalidArgumentCode(errors.CodeInvalidArgument))
}

func TestEveryRegisteredCodeHasAMessage(t *testing.T) {
	t.Parallel()

	registered := []errors.ErrorCode{
		errors.CodeInternal, errors.CodeInvalidArgument,
		errors.CodeConformationEmpty, errors.CodeConformationOddLength,
		errors.CodeConformationBadToken, errors.CodeConformationBadBridge,
		errors.CodeRingNameUnknown,
		errors.CodeThetaOutOfRange, errors.CodeLigandTypeInvalid,
		errors.CodeThetaGridInvalid, errors.CodeSweepInputMissing,
		errors.CodeSweepCanceled,
		errors.CodeExportDirFailed, errors.CodeExportWriteFailed,
		errors.CodeExportEncodeFailed,
	}

	for _, code := range registered {
		_, ok := errors.ErrorCodeMessage[code]
		assert.True(t, ok, "code %s has no default message", code)
	}
}
