package api

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"countries/internal/models"
	"countries/internal/rpc"
)

// PortType names the WSDL port type; binding and service names derive from it
const PortType = "CountriesPort"

//go:embed contract/*.tmpl
var contractFS embed.FS

var contractTemplates = template.Must(template.New("contract").
	Funcs(template.FuncMap{"xml": escapeXML}).
	ParseFS(contractFS, "contract/*.tmpl"))

// Contract renders the published schema and the WSDL describing the registered operations
type Contract struct {
	schema     string
	xsd        []byte
	operations []string
}

// NewContract describes every operation of ops in the countries namespace whose name ends in "Request".
func NewContract(ops []rpc.OperationKey) (*Contract, error) {
	var buf bytes.Buffer
	err := contractTemplates.ExecuteTemplate(&buf, "countries.xsd.tmpl", struct {
		Namespace  string
		Currencies []models.Currency
	}{models.Namespace, models.Currencies})
	if err != nil {
		return nil, fmt.Errorf("render schema: %w", err)
	}

	var names []string
	for _, k := range ops {
		if k.Namespace == models.Namespace && strings.HasSuffix(k.Name, "Request") {
			names = append(names, strings.TrimSuffix(k.Name, "Request"))
		}
	}

	return &Contract{
		schema:     buf.String(),
		xsd:        append([]byte(xml.Header), buf.Bytes()...),
		operations: names,
	}, nil
}

func (c *Contract) XSD() []byte {
	return c.xsd
}

// WSDL renders the WSDL 1.1 definition with its soap:address set to location
func (c *Contract) WSDL(location string) ([]byte, error) {
	var buf bytes.Buffer
	err := contractTemplates.ExecuteTemplate(&buf, "countries.wsdl.tmpl", struct {
		Namespace  string
		PortType   string
		Location   string
		Schema     string
		Operations []string
	}{models.Namespace, PortType, location, c.schema, c.operations})
	if err != nil {
		return nil, fmt.Errorf("render wsdl: %w", err)
	}
	return buf.Bytes(), nil
}

func escapeXML(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeDocument serves doc with an ETag and answers matching conditional requests with 304
func writeDocument(c echo.Context, doc []byte) error {
	etag := fmt.Sprintf(`"%016x"`, xxh3.Hash(doc))
	c.Response().Header().Set("ETag", etag)

	if etagMatches(c.Request().Header.Get("If-None-Match"), etag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, rpc.ContentType, doc)
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag || candidate == "*" {
			return true
		}
	}
	return false
}
