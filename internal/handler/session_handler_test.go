package handler

import (
	"testing"

	"nakshatra/internal/models"
)

func TestIsParticipant(t *testing.T) {
	session := &models.ChatSession{ID: 42, UserID: 1, AstrologerID: 7}
	astrologer := &models.Astrologer{ID: 7, UserID: 2}

	if !isParticipant(session, astrologer, 1) {
		t.Error("client denied access to their own session")
	}
	if !isParticipant(session, astrologer, 2) {
		t.Error("astrologer denied access to their own session")
	}
	if isParticipant(session, astrologer, 3) {
		t.Error("outsider admitted to the session")
	}
	if isParticipant(session, nil, 2) {
		t.Error("nil astrologer must not admit anyone but the client")
	}
}
