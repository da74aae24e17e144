package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: these primitives cross every layer boundary; unit tests
// pin the invariants "wrapped domain errors preserve the original code"
// and "errors.Is matches by code".
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeConflict, Message: "identity number already exists"}
		s.Equal("identity number already exists", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeConflict}
		s.Equal("conflict", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("write image asset")
		err := &Error{Code: CodeInternal, Message: "save card image", Err: inner}
		s.Equal(inner, errors.Unwrap(err))
	})

	s.Run("returns nil when nothing is wrapped", func() {
		err := &Error{Code: CodeNotFound, Message: "record not found"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeValidation, Message: "missing front image"}
		err2 := &Error{Code: CodeValidation, Message: "missing back image"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeValidation}
		err2 := &Error{Code: CodeBadRequest}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err1 := &Error{Code: CodeNotFound}
		s.False(err1.Is(errors.New("not found")))
	})

	s.Run("works with errors.Is through a chain", func() {
		inner := &Error{Code: CodeConflict, Message: "duplicate"}
		wrapped := &Error{Code: CodeInternal, Message: "save record", Err: inner}
		s.True(errors.Is(wrapped, &Error{Code: CodeConflict}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves original domain code", func() {
		original := New(CodeConflict, "identity number already exists")
		wrapped := Wrap(original, CodeInternal, "save record")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeConflict, domainErr.Code)
		s.Equal("save record", domainErr.Message)
	})

	s.Run("uses provided code for plain errors", func() {
		wrapped := Wrap(errors.New("connection refused"), CodeInternal, "store error")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeInternal, domainErr.Code)
	})

	s.Run("wrapped error stays reachable via errors.Is", func() {
		original := errors.New("root cause")
		s.True(errors.Is(Wrap(original, CodeInternal, "store error"), original))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.Run("matches the carried code", func() {
		err := New(CodeUnauthorized, "session required")
		s.True(HasCode(err, CodeUnauthorized))
		s.False(HasCode(err, CodeInternal))
	})

	s.Run("finds the code through a chain", func() {
		wrapped := Wrap(New(CodeConflict, "duplicate"), CodeInternal, "save record")
		s.True(HasCode(wrapped, CodeConflict))
	})

	s.Run("false for plain and nil errors", func() {
		s.False(HasCode(errors.New("boom"), CodeNotFound))
		s.False(HasCode(nil, CodeNotFound))
	})
}
