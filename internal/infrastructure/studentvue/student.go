package studentvue

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

// StudentInfo returns the translated profile and the decoded PNG photo. Both
// come from the same upstream call.
func (c *Client) StudentInfo(ctx context.Context, token *domain.AuthToken) (*domain.StudentInfo, []byte, error) {
	result, err := c.Call(ctx, token, MethodStudentInfo, "")
	if err != nil {
		return nil, nil, err
	}

	var si studentInfoXML
	if err := decodeResult(MethodStudentInfo, result, &si); err != nil {
		return nil, nil, err
	}

	if si.Photo == nil {
		return nil, nil, fmt.Errorf("%s: %w: missing photo", MethodStudentInfo, domain.ErrUpstreamParse)
	}
	photo, err := decodeBase64(*si.Photo)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: photo: %w: %v", MethodStudentInfo, domain.ErrUpstreamParse, err)
	}

	return translateStudent(si), photo, nil
}

type studentInfoXML struct {
	Type              string                `xml:"Type,attr"`
	FormattedName     string                `xml:"FormattedName"`
	PermID            string                `xml:"PermID"`
	Gender            string                `xml:"Gender"`
	Grade             string                `xml:"Grade"`
	Address           string                `xml:"Address"`
	NickName          string                `xml:"NickName"`
	BirthDate         string                `xml:"BirthDate"`
	EMail             string                `xml:"EMail"`
	Phone             string                `xml:"Phone"`
	CurrentSchool     string                `xml:"CurrentSchool"`
	HomeRoom          string                `xml:"HomeRoom"`
	HomeRoomTch       string                `xml:"HomeRoomTch"`
	CounselorName     string                `xml:"CounselorName"`
	Photo             *string               `xml:"Photo"`
	EmergencyContacts []emergencyContactXML `xml:"EmergencyContacts>EmergencyContact"`
	Physician         physicianXML          `xml:"Physician"`
	Dentist           dentistXML            `xml:"Dentist"`
}

type emergencyContactXML struct {
	Name         string `xml:"Name,attr"`
	Relationship string `xml:"Relationship,attr"`
	HomePhone    string `xml:"HomePhone,attr"`
	WorkPhone    string `xml:"WorkPhone,attr"`
	OtherPhone   string `xml:"OtherPhone,attr"`
	MobilePhone  string `xml:"MobilePhone,attr"`
}

type physicianXML struct {
	Name     string `xml:"Name,attr"`
	Hospital string `xml:"Hospital,attr"`
	Phone    string `xml:"Phone,attr"`
	Extn     string `xml:"Extn,attr"`
}

type dentistXML struct {
	Name   string `xml:"Name,attr"`
	Office string `xml:"Office,attr"`
	Phone  string `xml:"Phone,attr"`
	Extn   string `xml:"Extn,attr"`
}

func translateStudent(si studentInfoXML) *domain.StudentInfo {
	contacts := make([]domain.Contact, 0, len(si.EmergencyContacts))
	for _, ec := range si.EmergencyContacts {
		contacts = append(contacts, translateContact(ec))
	}

	return &domain.StudentInfo{
		Name:              si.FormattedName,
		ID:                si.PermID,
		Gender:            si.Gender,
		Grade:             si.Grade,
		Address:           strings.ReplaceAll(si.Address, "<br>", "\n"),
		BirthDate:         si.BirthDate,
		Email:             si.EMail,
		PhoneNumber:       si.Phone,
		EmergencyContacts: contacts,
		Physician: domain.Doctor{
			Name:        si.Physician.Name,
			Workplace:   si.Physician.Hospital,
			PhoneNumber: si.Physician.Phone,
		},
		Dentist: domain.Doctor{
			Name:        si.Dentist.Name,
			Workplace:   si.Dentist.Office,
			PhoneNumber: si.Dentist.Phone,
		},
		School: si.CurrentSchool,
	}
}

// translateContact lists the non-empty numbers, mobile first.
func translateContact(ec emergencyContactXML) domain.Contact {
	numbers := make([]string, 0, 4)
	for _, n := range []string{ec.MobilePhone, ec.HomePhone, ec.WorkPhone, ec.OtherPhone} {
		if n != "" {
			numbers = append(numbers, n)
		}
	}
	return domain.Contact{
		Name:         ec.Name,
		Relation:     ec.Relationship,
		PhoneNumbers: numbers,
	}
}

// decodeBase64 tolerates the line breaks StudentVue inserts into long blobs.
func decodeBase64(s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)
	return base64.StdEncoding.DecodeString(cleaned)
}
