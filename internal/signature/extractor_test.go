package signature

import (
	"testing"

	"github.com/beevik/etree"
)

const signedExtension = `<ext:ExtensionContent xmlns:ext="urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2">
	<ds:Signature xmlns:ds="http://www.w3.org/2000/09/xmldsig#" xmlns:xades="http://uri.etsi.org/01903/v1.3.2#" Id="xmldsig-d0322c4f">
		<ds:SignedInfo>
			<ds:CanonicalizationMethod Algorithm="http://www.w3.org/TR/2001/REC-xml-c14n-20010315"/>
		</ds:SignedInfo>
		<ds:SignatureValue>q4HWeb47oLdDM4D3YiYDOSXE4YfSHkQKxUfSYiEiPuP2XWvD7ELZTC4ENFv6krgDAXczmi0W7OMi</ds:SignatureValue>
		<ds:KeyInfo>
			<ds:X509Data>
				<ds:X509Certificate>MIIIODCCBiCgAwIBAgIIbAsHYmJtoOIwDQYJKoZIhvcNAQELBQAw</ds:X509Certificate>
			</ds:X509Data>
		</ds:KeyInfo>
		<ds:Object>
			<xades:QualifyingProperties Target="#xmldsig-d0322c4f">
				<xades:SignedProperties>
					<xades:SignedSignatureProperties>
						<xades:SigningTime>2023-05-12T10:21:03.012-05:00</xades:SigningTime>
						<xades:SigningCertificate>
							<xades:Cert>
								<xades:IssuerSerial>
									<ds:X509IssuerName>C=CO,L=Bogota D.C.,O=Andes SCD.,CN=CA ANDES SCD S.A. Clase II v3</ds:X509IssuerName>
									<ds:X509SerialNumber>7785115889167890658</ds:X509SerialNumber>
								</xades:IssuerSerial>
							</xades:Cert>
						</xades:SigningCertificate>
						<xades:SignaturePolicyIdentifier>
							<xades:SignaturePolicyId>
								<xades:SigPolicyId>
									<xades:Identifier>https://facturaelectronica.dian.gov.co/politicadefirma/v2/politicadefirmav2.pdf</xades:Identifier>
								</xades:SigPolicyId>
							</xades:SignaturePolicyId>
						</xades:SignaturePolicyIdentifier>
						<xades:SignerRole>
							<xades:ClaimedRoles>
								<xades:ClaimedRole>supplier</xades:ClaimedRole>
							</xades:ClaimedRoles>
						</xades:SignerRole>
					</xades:SignedSignatureProperties>
				</xades:SignedProperties>
			</xades:QualifyingProperties>
		</ds:Object>
	</ds:Signature>
</ext:ExtensionContent>`

func parseElement(t *testing.T, data string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(data); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc.Root()
}

func TestExtract(t *testing.T) {
	root := parseElement(t, signedExtension)

	sigElem := Find(root)
	if sigElem == nil {
		t.Fatal("expected to find Signature element")
	}

	sig := Extract(sigElem)

	checks := map[string][2]string{
		"ID":               {sig.ID, "xmldsig-d0322c4f"},
		"SignatureValue":   {sig.SignatureValue, "q4HWeb47oLdDM4D3YiYDOSXE4YfSHkQKxUfSYiEiPuP2XWvD7ELZTC4ENFv6krgDAXczmi0W7OMi"},
		"X509Certificate":  {sig.X509Certificate, "MIIIODCCBiCgAwIBAgIIbAsHYmJtoOIwDQYJKoZIhvcNAQELBQAw"},
		"SigningTime":      {sig.SigningTime, "2023-05-12T10:21:03.012-05:00"},
		"ClaimedRole":      {sig.ClaimedRole, "supplier"},
		"PolicyIdentifier": {sig.PolicyIdentifier, "https://facturaelectronica.dian.gov.co/politicadefirma/v2/politicadefirmav2.pdf"},
		"IssuerName":       {sig.IssuerName, "C=CO,L=Bogota D.C.,O=Andes SCD.,CN=CA ANDES SCD S.A. Clase II v3"},
		"SerialNumber":     {sig.SerialNumber, "7785115889167890658"},
	}

	for field, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s: got %q, want %q", field, c[0], c[1])
		}
	}

	if sig.Text == "" {
		t.Error("expected textual content to be captured")
	}
}

func TestExtract_Nil(t *testing.T) {
	sig := Extract(nil)
	if sig.Text != "" || sig.SignatureValue != "" {
		t.Errorf("expected zero signature, got %+v", sig)
	}
	if Find(nil) != nil {
		t.Error("expected nil for nil root")
	}
}

func TestExtract_Unprefixed(t *testing.T) {
	root := parseElement(t, `<Signature xmlns="http://www.w3.org/2000/09/xmldsig#"><SignatureValue> abc </SignatureValue></Signature>`)

	sig := Extract(Find(root))
	if sig.SignatureValue != "abc" {
		t.Errorf("SignatureValue: got %q, want %q", sig.SignatureValue, "abc")
	}
	if sig.X509Certificate != "" {
		t.Errorf("X509Certificate: got %q, want empty", sig.X509Certificate)
	}
}

func TestCanExtract(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{
			name:     "XML with Signature",
			data:     []byte(`<?xml version="1.0"?><Invoice><Signature xmlns="http://www.w3.org/2000/09/xmldsig#"/></Invoice>`),
			expected: true,
		},
		{
			name:     "XML with ds:Signature",
			data:     []byte(`<Invoice><ds:Signature xmlns:ds="http://www.w3.org/2000/09/xmldsig#"/></Invoice>`),
			expected: true,
		},
		{
			name:     "Signature tag without the XMLDSig namespace",
			data:     []byte(`<Invoice><Signature/></Invoice>`),
			expected: false,
		},
		{
			name:     "XML without Signature",
			data:     []byte(`<?xml version="1.0"?><Invoice><cbc:ID>1</cbc:ID></Invoice>`),
			expected: false,
		},
		{
			name:     "Not XML",
			data:     []byte(`{"type": "json"}`),
			expected: false,
		},
		{
			name:     "Empty",
			data:     []byte(``),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanExtract(tt.data); got != tt.expected {
				t.Errorf("CanExtract: got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSigned(t *testing.T) {
	data := []byte(`<Invoice><ext:UBLExtensions xmlns:ext="e"><ds:Signature xmlns:ds="http://www.w3.org/2000/09/xmldsig#"/></ext:UBLExtensions></Invoice>`)
	root := parseElement(t, string(data))
	if !Signed(data, root) {
		t.Error("Signed: got false, want true")
	}

	// the namespace appears only in an attribute value
	data = []byte(`<Invoice note="http://www.w3.org/2000/09/xmldsig#"><cbc:Note xmlns:cbc="c">ds:Signature</cbc:Note></Invoice>`)
	root = parseElement(t, string(data))
	if Signed(data, root) {
		t.Error("Signed: got true, want false")
	}

	if Signed(nil, nil) {
		t.Error("Signed(nil, nil): got true, want false")
	}
}
