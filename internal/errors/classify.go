package errors

import (
	"errors"
	"strings"
)

// notFoundFragments are upstream message substrings that identify a missing
// entity when the gateway surfaces only a generic error. Pattern-matching is
// a fallback; Classify prefers the structured code on UpstreamError when the
// gateway provided one.
var notFoundFragments = []string{
	"entity not found",
	"could not be found",
	"does not exist",
}

// Classify maps any error raised inside a handler to its taxonomy kind.
// Unmatched errors fall through as KindUpstream with their message preserved.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return KindAuth
	}
	var pf *PartialFailureError
	if errors.As(err, &pf) {
		return KindPartialFailure
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return KindNotFound
	}

	var ue *UpstreamError
	if errors.As(err, &ue) {
		if ue.Code == "ENTITY_NOT_FOUND" || isNotFoundMessage(ue.Err) {
			return KindNotFound
		}
		return KindUpstream
	}

	if isNotFoundMessage(err) {
		return KindNotFound
	}
	return KindUpstream
}

func isNotFoundMessage(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, frag := range notFoundFragments {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}
