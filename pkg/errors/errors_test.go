// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors/errors.go.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/RSU-Analyzer/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// TestNew
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"theta out of range", errors.CodeThetaOutOfRange, "theta 93.5 outside [0, 90]"},
		{"bad token", errors.CodeConformationBadToken, "unrecognized token \"RX\""},
		{"export write", errors.CodeExportWriteFailed, "failed to write sweep CSV"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail, "Detail should be empty for bare New()")
			assert.Nil(t, ae.Cause, "Cause should be nil for bare New()")
		})
	}
}

func TestNew_StackIsPopulated(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeInternal, "test")
	require.NotNil(t, ae)
	assert.Contains(t, ae.Stack, "errors_test",
		"captured stack should include the calling test file")
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWrap
// ─────────────────────────────────────────────────────────────────────────────

func TestWrap_NilErrReturnsNil(t *testing.T) {
	t.Parallel()

	result := errors.Wrap(nil, errors.CodeInternal, "should not matter")
	assert.Nil(t, result)
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	t.Parallel()

	root := stderrors.New("open /out/rsu.csv: permission denied")
	wrapped := errors.Wrap(root, errors.CodeExportWriteFailed, "write failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.CodeExportWriteFailed, wrapped.Code)
	assert.Equal(t, "write failed", wrapped.Message)
	assert.Equal(t, root, wrapped.Cause)
	assert.Equal(t, root, stderrors.Unwrap(wrapped))
}

func TestWrap_PreservesOriginalCodeWhenCodeUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.CodeThetaOutOfRange, "theta 91 outside [0, 90]")
	outer := errors.Wrap(inner, errors.CodeUnknown, "adding context")

	require.NotNil(t, outer)
	assert.Equal(t, errors.CodeThetaOutOfRange, outer.Code,
		"Wrap with CodeUnknown should inherit the inner AppError's code")
}

func TestWrap_OverridesCodeWhenExplicit(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.CodeThetaOutOfRange, "theta 91 outside [0, 90]")
	outer := errors.Wrap(inner, errors.CodeInternal, "unexpected state")

	assert.Equal(t, errors.CodeInternal, outer.Code,
		"explicit non-Unknown code must override the inner code")
}

func TestWrap_MultiLevel(t *testing.T) {
	t.Parallel()

	root := stderrors.New("mkdir /out: read-only file system")
	level1 := errors.Wrap(root, errors.CodeExportDirFailed, "create output dir")
	level2 := errors.Wrap(level1, errors.CodeInternal, "sweep export failed")

	// Unwrap chain: level2 → level1 → root
	assert.Equal(t, level1, stderrors.Unwrap(level2))
	assert.Equal(t, root, stderrors.Unwrap(level1))
}

// ─────────────────────────────────────────────────────────────────────────────
// TestError_Method
// ─────────────────────────────────────────────────────────────────────────────

func TestError_FormatWithoutDetail(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeConformationOddLength, "conformation string has odd length")
	s := ae.Error()

	assert.Contains(t, s, "CONF_002")
	assert.Contains(t, s, "odd length")
	assert.False(t, strings.Contains(s, ": "),
		"Error() without detail should not contain a detail segment")
}

func TestError_FormatWithDetail(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeConformationBadToken, "unrecognized token").
		WithDetail("token=\"RX\" at offset 4")
	s := ae.Error()

	assert.Contains(t, s, "CONF_003")
	assert.Contains(t, s, "unrecognized token")
	assert.Contains(t, s, "offset 4")
}

func TestError_ImplementsErrorInterface(t *testing.T) {
	t.Parallel()

	var err error = errors.New(errors.CodeInternal, "boom")
	assert.NotEmpty(t, err.Error())
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWithDetail / TestWithCause
// ─────────────────────────────────────────────────────────────────────────────

func TestWithDetail_SetsDetailOnCopy(t *testing.T) {
	t.Parallel()

	original := errors.New(errors.CodeRingNameUnknown, "ring not in catalog")
	detailed := original.WithDetail("ring=syn-X-9")

	assert.Empty(t, original.Detail, "WithDetail must not mutate the original")
	assert.Equal(t, "ring=syn-X-9", detailed.Detail)
	assert.Equal(t, original.Code, detailed.Code)
	assert.Equal(t, original.Message, detailed.Message)
}

func TestWithDetail_NilReceiverReturnsNil(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
}

func TestWithCause_AttachesCauseOnCopy(t *testing.T) {
	t.Parallel()

	original := errors.New(errors.CodeExportEncodeFailed, "encode failed")
	cause := stderrors.New("csv: write error")
	withCause := original.WithCause(cause)

	assert.Nil(t, original.Cause, "WithCause must not mutate the original")
	assert.Equal(t, cause, withCause.Cause)
	assert.True(t, stderrors.Is(withCause, cause))
}

func TestWithCause_NilReceiverReturnsNil(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

// ─────────────────────────────────────────────────────────────────────────────
// TestIsCode / TestGetCode / TestIsInvalidArgument
// ─────────────────────────────────────────────────────────────────────────────

func TestIsCode_DirectMatch(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.CodeThetaOutOfRange, "theta -0.0001 outside [0, 90]")
	assert.True(t, errors.IsCode(ae, errors.CodeThetaOutOfRange))
	assert.False(t, errors.IsCode(ae, errors.CodeInternal))
}

func TestIsCode_NestedChain(t *testing.T) {
	t.Parallel()

	root := errors.New(errors.CodeConformationBadToken, "unrecognized token")
	wrapped := errors.Wrap(root, errors.CodeInternal, "sweep failed")

	assert.True(t, errors.IsCode(wrapped, errors.CodeConformationBadToken),
		"IsCode must find the code anywhere in the error chain")
	assert.True(t, errors.IsCode(wrapped, errors.CodeInternal))
}

func TestIsCode_NilAndStdlibReturnFalse(t *testing.T) {
	t.Parallel()

	assert.False(t, errors.IsCode(nil, errors.CodeInternal))
	assert.False(t, errors.IsCode(stderrors.New("plain"), errors.CodeInternal))
}

func TestGetCode_DirectAndNested(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.CodeThetaGridInvalid, "step must be positive")
	outer := errors.Wrap(inner, errors.CodeInternal, "sweep init failed")

	assert.Equal(t, errors.CodeThetaGridInvalid, errors.GetCode(inner))
	// GetCode returns the outermost AppError's code.
	assert.Equal(t, errors.CodeInternal, errors.GetCode(outer))
}

func TestGetCode_NilReturnsCodeOK(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
}

func TestGetCode_StdlibErrorReturnsCodeUnknown(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("context: %w", stderrors.New("cause"))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(err))
}

func TestIsInvalidArgument_ClassMembers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"generic invalid argument", errors.InvalidArgument("bad input"), true},
		{"theta out of range", errors.New(errors.CodeThetaOutOfRange, "theta 90.0001"), true},
		{"odd length", errors.New(errors.CodeConformationOddLength, "odd"), true},
		{"bad token", errors.New(errors.CodeConformationBadToken, "RX"), true},
		{"ring unknown", errors.New(errors.CodeRingNameUnknown, "syn-X-9"), true},
		{"internal", errors.Internal("boom"), false},
		{"export failure", errors.New(errors.CodeExportWriteFailed, "disk full"), false},
		{"stdlib error", stderrors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, errors.IsInvalidArgument(tc.err))
		})
	}
}

func TestIsInvalidArgument_FindsClassDeepInChain(t *testing.T) {
	t.Parallel()

	root := errors.New(errors.CodeLigandTypeInvalid, "invalid ligand type \"XX\"")
	mid := errors.Wrap(root, errors.CodeInternal, "walk failed")
	outer := fmt.Errorf("cli: %w", mid)

	assert.True(t, errors.IsInvalidArgument(outer))
}

// ─────────────────────────────────────────────────────────────────────────────
// TestStdlibCompatibility
// ─────────────────────────────────────────────────────────────────────────────

func TestStdlib_ErrorsAs_ExtractsAppError(t *testing.T) {
	t.Parallel()

	original := errors.New(errors.CodeConformationEmpty, "no ligand tokens")
	wrapped := fmt.Errorf("parse: %w", original)

	var ae *errors.AppError
	require.True(t, stderrors.As(wrapped, &ae),
		"errors.As must extract *AppError from a wrapped chain")
	assert.Equal(t, errors.CodeConformationEmpty, ae.Code)
}

func TestStdlib_ErrorsIs_DirectComparison(t *testing.T) {
	t.Parallel()

	sentinel := errors.New(errors.CodeSweepCanceled, "canceled")
	wrapped := fmt.Errorf("sweep: %w", sentinel)

	assert.True(t, stderrors.Is(wrapped, sentinel))
}
