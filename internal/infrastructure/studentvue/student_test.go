package studentvue

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

const sampleStudentInfo = `<StudentInfo Type="Student">
  <FormattedName>Jane Doe</FormattedName>
  <PermID>123456</PermID>
  <Gender>Female</Gender>
  <Grade>11</Grade>
  <Address>1 Main St&lt;br&gt;Town, MD 20850</Address>
  <BirthDate>1/2/2007</BirthDate>
  <EMail>jane@school.example.org</EMail>
  <Phone>555-0100</Phone>
  <CurrentSchool>Central High</CurrentSchool>
  <Photo>iVBORw0K
Ggo=</Photo>
  <EmergencyContacts>
    <EmergencyContact Name="John Doe" Relationship="Father" HomePhone="555-0101" WorkPhone="" OtherPhone="555-0103" MobilePhone="555-0102" />
  </EmergencyContacts>
  <Physician Name="Dr. Who" Hospital="General" Phone="555-0199" Extn="" />
  <Dentist Name="Dr. Tooth" Office="Smiles" Phone="555-0198" Extn="" />
</StudentInfo>`

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestClient_StudentInfo(t *testing.T) {
	srv := serveResult(t, sampleStudentInfo)
	c, token := newTestClient(srv)

	info, photo, err := c.StudentInfo(context.Background(), token)
	if err != nil {
		t.Fatalf("StudentInfo: %v", err)
	}

	if info.Name != "Jane Doe" || info.ID != "123456" || info.Gender != "Female" || info.Grade != "11" {
		t.Fatalf("unexpected identity %+v", info)
	}
	if info.Address != "1 Main St\nTown, MD 20850" {
		t.Fatalf("address = %q", info.Address)
	}
	if info.Email != "jane@school.example.org" || info.PhoneNumber != "555-0100" || info.School != "Central High" {
		t.Fatalf("unexpected contact fields %+v", info)
	}
	if info.BirthDate != "1/2/2007" {
		t.Fatalf("birth_date = %q", info.BirthDate)
	}

	if len(info.EmergencyContacts) != 1 {
		t.Fatalf("expected 1 emergency contact, got %d", len(info.EmergencyContacts))
	}
	ec := info.EmergencyContacts[0]
	if ec.Name != "John Doe" || ec.Relation != "Father" {
		t.Fatalf("unexpected contact %+v", ec)
	}
	want := []string{"555-0102", "555-0101", "555-0103"}
	if len(ec.PhoneNumbers) != len(want) {
		t.Fatalf("phone numbers = %v, want %v", ec.PhoneNumbers, want)
	}
	for i := range want {
		if ec.PhoneNumbers[i] != want[i] {
			t.Fatalf("phone numbers = %v, want %v", ec.PhoneNumbers, want)
		}
	}

	if info.Physician != (domain.Doctor{Name: "Dr. Who", Workplace: "General", PhoneNumber: "555-0199"}) {
		t.Fatalf("unexpected physician %+v", info.Physician)
	}
	if info.Dentist != (domain.Doctor{Name: "Dr. Tooth", Workplace: "Smiles", PhoneNumber: "555-0198"}) {
		t.Fatalf("unexpected dentist %+v", info.Dentist)
	}

	if !bytes.Equal(photo, pngSignature) {
		t.Fatalf("photo = %x, want %x", photo, pngSignature)
	}
}

func TestClient_StudentInfo_BadPhoto(t *testing.T) {
	srv := serveResult(t, `<StudentInfo><FormattedName>X</FormattedName><Photo>***</Photo></StudentInfo>`)
	c, token := newTestClient(srv)

	if _, _, err := c.StudentInfo(context.Background(), token); !errors.Is(err, domain.ErrUpstreamParse) {
		t.Fatalf("expected ErrUpstreamParse, got %v", err)
	}
}

func TestClient_StudentInfo_MissingPhoto(t *testing.T) {
	srv := serveResult(t, `<StudentInfo><FormattedName>X</FormattedName></StudentInfo>`)
	c, token := newTestClient(srv)

	_, photo, err := c.StudentInfo(context.Background(), token)
	if !errors.Is(err, domain.ErrUpstreamParse) {
		t.Fatalf("expected ErrUpstreamParse, got photo of %d bytes, err=%v", len(photo), err)
	}
}
