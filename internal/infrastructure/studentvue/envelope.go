package studentvue

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

const (
	soapNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	xsiNamespace  = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNamespace  = "http://www.w3.org/2001/XMLSchema"
	pxpNamespace  = "http://edupoint.com/webservices/"

	webServiceHandle = "PXPWebServices"
)

type requestEnvelope struct {
	XMLName xml.Name    `xml:"soap:Envelope"`
	XSI     string      `xml:"xmlns:xsi,attr"`
	XSD     string      `xml:"xmlns:xsd,attr"`
	Soap    string      `xml:"xmlns:soap,attr"`
	Body    requestBody `xml:"soap:Body"`
}

type requestBody struct {
	Request processWebServiceRequest `xml:"ProcessWebServiceRequest"`
}

type processWebServiceRequest struct {
	Xmlns                string `xml:"xmlns,attr"`
	UserID               string `xml:"userID,omitempty"`
	Password             string `xml:"password,omitempty"`
	SkipLoginLog         string `xml:"skipLoginLog"`
	Parent               string `xml:"parent"`
	WebServiceHandleName string `xml:"webServiceHandleName"`
	MethodName           string `xml:"methodName"`
	ParamStr             string `xml:"paramStr"`
}

// newRequest builds the PXP request for the token's credentials. params is
// raw XML placed after the ChildIntID element.
func newRequest(token *domain.AuthToken, method, params string) processWebServiceRequest {
	return processWebServiceRequest{
		Xmlns:                pxpNamespace,
		UserID:               token.Username,
		Password:             token.Password.Value(),
		SkipLoginLog:         "1",
		Parent:               "0",
		WebServiceHandleName: webServiceHandle,
		MethodName:           method,
		ParamStr:             "<Parms><ChildIntID>0</ChildIntID>" + params + "</Parms>",
	}
}

func encodeEnvelope(req processWebServiceRequest) ([]byte, error) {
	env := requestEnvelope{
		XSI:  xsiNamespace,
		XSD:  xsdNamespace,
		Soap: soapNamespace,
		Body: requestBody{Request: req},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return buf.Bytes(), nil
}

// responseEnvelope matches on local names so the soap: prefix is irrelevant.
type responseEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Result  string   `xml:"Body>ProcessWebServiceRequestResponse>ProcessWebServiceRequestResult"`
}

type rtError struct {
	XMLName xml.Name `xml:"RT_ERROR"`
	Message string   `xml:"ERROR_MESSAGE,attr"`
}

// decodeXML is lenient about the declared charset; PXP results are always
// delivered inside a UTF-8 envelope.
func decodeXML(data string, v any) error {
	d := xml.NewDecoder(strings.NewReader(data))
	d.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	d.Entity = xml.HTMLEntity
	return d.Decode(v)
}

// param renders <name>value</name> with the value escaped.
func param(name, value string) string {
	var b strings.Builder
	b.WriteString("<" + name + ">")
	_ = xml.EscapeText(&b, []byte(value))
	b.WriteString("</" + name + ">")
	return b.String()
}
