package rpc

import (
	"encoding/xml"
	"errors"
	"io"

	"countries/internal/faults"
)

// EnvelopeNamespace is the SOAP 1.1 envelope namespace
const EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

// ContentType of SOAP 1.1 messages
const ContentType = "text/xml; charset=utf-8"

const (
	envelopeOpen  = `<SOAP-ENV:Envelope xmlns:SOAP-ENV="` + EnvelopeNamespace + `"><SOAP-ENV:Header/><SOAP-ENV:Body>`
	envelopeClose = `</SOAP-ENV:Body></SOAP-ENV:Envelope>`
)

// xmlPayload is the first child of a SOAP Body, bound lazily
type xmlPayload struct {
	dec   *xml.Decoder
	start xml.StartElement
}

func (p *xmlPayload) Decode(v any) error {
	if err := p.dec.DecodeElement(v, &p.start); err != nil {
		return faults.Wrap(faults.MalformedRequest, "cannot bind request payload", err)
	}
	return nil
}

// ReadEnvelope parses a SOAP envelope up to the payload element of its body.
// The returned key is the payload's resolved namespace and local name.
func ReadEnvelope(r io.Reader) (OperationKey, Payload, error) {
	dec := xml.NewDecoder(r)

	start, err := nextStart(dec)
	if err != nil {
		return OperationKey{}, nil, err
	}
	if start.Name.Space != EnvelopeNamespace || start.Name.Local != "Envelope" {
		return OperationKey{}, nil, faults.New(faults.MalformedRequest, "message is not a SOAP 1.1 envelope")
	}

	// Header is optional and ignored
	for {
		start, err = nextStart(dec)
		if err != nil {
			return OperationKey{}, nil, err
		}
		if start.Name.Space == EnvelopeNamespace && start.Name.Local == "Header" {
			if err := dec.Skip(); err != nil {
				return OperationKey{}, nil, faults.Wrap(faults.MalformedRequest, "cannot read SOAP header", err)
			}
			continue
		}
		break
	}
	if start.Name.Space != EnvelopeNamespace || start.Name.Local != "Body" {
		return OperationKey{}, nil, faults.New(faults.MalformedRequest, "SOAP envelope has no body")
	}

	start, err = nextStart(dec)
	if err != nil {
		return OperationKey{}, nil, err
	}

	key := OperationKey{Namespace: start.Name.Space, Name: start.Name.Local}
	return key, &xmlPayload{dec: dec, start: start}, nil
}

// nextStart advances to the next start element at the current level.
// Reaching an end element first means the expected element is missing.
func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, faults.New(faults.MalformedRequest, "unexpected end of message")
			}
			return xml.StartElement{}, faults.Wrap(faults.MalformedRequest, "cannot parse message", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.EndElement:
			return xml.StartElement{}, faults.New(faults.MalformedRequest, "SOAP envelope is incomplete")
		}
	}
}

// WriteEnvelope writes body wrapped in a SOAP envelope
func WriteEnvelope(w io.Writer, body any) error {
	if _, err := io.WriteString(w, xml.Header+envelopeOpen); err != nil {
		return err
	}
	if err := xml.NewEncoder(w).Encode(body); err != nil {
		return err
	}
	_, err := io.WriteString(w, envelopeClose)
	return err
}

// Fault is a SOAP 1.1 fault element
type Fault struct {
	XMLName xml.Name `xml:"SOAP-ENV:Fault"`
	Code    string   `xml:"faultcode"`
	String  string   `xml:"faultstring"`
}

// FaultFor maps err to a Client or Server fault
func FaultFor(err error) Fault {
	code := "SOAP-ENV:Server"
	if faults.IsClient(faults.CodeOf(err)) {
		code = "SOAP-ENV:Client"
	}
	return Fault{Code: code, String: faults.MessageOf(err)}
}

func WriteFault(w io.Writer, err error) error {
	return WriteEnvelope(w, FaultFor(err))
}
