package studentvue

import (
	"context"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

func (c *Client) SchoolInfo(ctx context.Context, token *domain.AuthToken) (*domain.SchoolInfo, error) {
	result, err := c.Call(ctx, token, MethodSchoolInfo, "")
	if err != nil {
		return nil, err
	}

	var listing schoolInfoXML
	if err := decodeResult(MethodSchoolInfo, result, &listing); err != nil {
		return nil, err
	}
	return translateSchool(listing), nil
}

type schoolInfoXML struct {
	School         string         `xml:"School,attr"`
	Principal      string         `xml:"Principal,attr"`
	SchoolAddress  string         `xml:"SchoolAddress,attr"`
	SchoolAddress2 string         `xml:"SchoolAddress2,attr"`
	SchoolCity     string         `xml:"SchoolCity,attr"`
	SchoolState    string         `xml:"SchoolState,attr"`
	SchoolZip      string         `xml:"SchoolZip,attr"`
	Phone          string         `xml:"Phone,attr"`
	Phone2         string         `xml:"Phone2,attr"`
	URL            string         `xml:"URL,attr"`
	PrincipalEmail string         `xml:"PrincipalEmail,attr"`
	PrincipalGu    string         `xml:"PrincipalGu,attr"`
	Staff          []staffListXML `xml:"StaffLists>StaffList"`
}

type staffListXML struct {
	Name    string `xml:"Name,attr"`
	EMail   string `xml:"EMail,attr"`
	Title   string `xml:"Title,attr"`
	Phone   string `xml:"Phone,attr"`
	Extn    string `xml:"Extn,attr"`
	StaffGU string `xml:"StaffGU,attr"`
}

func translateSchool(l schoolInfoXML) *domain.SchoolInfo {
	staff := make([]domain.StaffInfo, 0, len(l.Staff))
	for _, s := range l.Staff {
		staff = append(staff, domain.StaffInfo{
			Name:     s.Name,
			JobTitle: s.Title,
			Email:    s.EMail,
		})
	}

	return &domain.SchoolInfo{
		Name:           l.School,
		Principal:      l.Principal,
		PrincipalEmail: l.PrincipalEmail,
		Address:        l.SchoolAddress,
		City:           l.SchoolCity,
		State:          l.SchoolState,
		ZipCode:        l.SchoolZip,
		PhoneNumber:    l.Phone,
		Website:        l.URL,
		Staff:          staff,
	}
}
