package studentvue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gradepeek/svue-api/internal/api/metrics"
	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

const (
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 32 << 20
	servicePath      = "/Service/PXPCommunication.asmx"
)

// PXP method names.
const (
	MethodGradebook     = "Gradebook"
	MethodStudentInfo   = "StudentInfo"
	MethodSchoolInfo    = "StudentSchoolInfo"
	MethodListDocuments = "GetStudentDocumentInitialData"
	MethodGetDocument   = "GetContentOfAttachedDoc"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	// Scheme is "https" in production; tests point it at plain httptest servers.
	Scheme string
}

// Client implements ports.StudentVueClient over SOAP.
type Client struct {
	http     *http.Client
	scheme   string
	versions ports.VersionKeyProvider
	log      zerolog.Logger
}

var _ ports.StudentVueClient = (*Client)(nil)

func NewClient(versions ports.VersionKeyProvider, opts Options, log zerolog.Logger) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	scheme := opts.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return &Client{http: hc, scheme: scheme, versions: versions, log: log}
}

func (c *Client) endpoint(districtURL string) string {
	return c.scheme + "://" + districtURL + servicePath
}

// Call performs one ProcessWebServiceRequest and returns the raw result XML.
// Session cookies handed out by the district replace token.Cookie.
func (c *Client) Call(ctx context.Context, token *domain.AuthToken, method, params string) (string, error) {
	start := time.Now()
	result, outcome, err := c.call(ctx, token, method, params)

	metrics.UpstreamRequestsTotal.WithLabelValues(method, outcome).Inc()
	metrics.UpstreamDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	c.log.Debug().
		Str("method", method).
		Str("district", token.DistrictURL).
		Str("outcome", outcome).
		Dur("duration", time.Since(start)).
		Msg("studentvue call")

	return result, err
}

func (c *Client) call(ctx context.Context, token *domain.AuthToken, method, params string) (string, string, error) {
	version, err := c.versions.VersionKey(ctx)
	if err != nil {
		return "", "version_key", err
	}

	body, err := encodeEnvelope(newRequest(token, method, params))
	if err != nil {
		return "", "encode", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(token.DistrictURL), bytes.NewReader(body))
	if err != nil {
		return "", "network", fmt.Errorf("%s: %w: %v", method, domain.ErrUpstreamNetwork, err)
	}
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("Cookie", fmt.Sprintf("%sAppSupportsSession=1; edupointkey=1; edupointkeyversion=%s", token.Cookie, version))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "network", fmt.Errorf("%s: %w: %v", method, domain.ErrUpstreamNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		return "", "maintenance", domain.ErrMaintenance
	}

	if cookies := sessionCookies(resp.Header); cookies != "" {
		token.Cookie = cookies
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", "network", fmt.Errorf("%s: read body: %w: %v", method, domain.ErrUpstreamNetwork, err)
	}

	var env responseEnvelope
	if err := decodeXML(string(raw), &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return "", "status", fmt.Errorf("%s: %w %d", method, domain.ErrUpstreamStatus, resp.StatusCode)
		}
		return "", "parse", fmt.Errorf("%s: %w: %v", method, domain.ErrUpstreamParse, err)
	}

	if strings.Contains(env.Result, "ERROR_MESSAGE=") {
		var rt rtError
		if err := decodeXML(env.Result, &rt); err != nil {
			return "", "parse", fmt.Errorf("%s: %w: %v", method, domain.ErrUpstreamParse, err)
		}
		return "", "rt_error", domain.NewUpstreamError(rt.Message)
	}

	return env.Result, "ok", nil
}

// sessionCookies keeps the name=value; segment of every Set-Cookie header,
// each followed by a space so the result can prefix the fixed cookies.
func sessionCookies(h http.Header) string {
	var b strings.Builder
	for _, v := range h.Values("Set-Cookie") {
		fields := strings.Fields(v)
		if len(fields) > 0 {
			b.WriteString(fields[0])
		}
		b.WriteString(" ")
	}
	return b.String()
}

// decodeResult unmarshals a PXP result, tagging failures as parse errors.
func decodeResult(method, result string, v any) error {
	if err := decodeXML(result, v); err != nil {
		return fmt.Errorf("%s: %w: %v", method, domain.ErrUpstreamParse, err)
	}
	return nil
}
