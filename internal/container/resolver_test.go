package container_test

import (
	"archive/zip"
	"bytes"
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/ubl-reader/internal/container"
	"github.com/rezonia/ubl-reader/internal/model"
)

const minimalInvoice = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2" xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
	<cbc:ID>FE-1</cbc:ID>
</Invoice>`

const minimalCreditNote = `<CreditNote xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"><cbc:ID>NC-1</cbc:ID></CreditNote>`

type zipEntry struct {
	name    string
	content string
}

func buildZip(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func attachedDocument(inner string) string {
	return `<AttachedDocument xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2" xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
	<cbc:ID>AD-1</cbc:ID>
	<cac:Attachment>
		<cac:ExternalReference>
			<cbc:MimeCode>text/xml</cbc:MimeCode>
			<cbc:Description>` + html.EscapeString(inner) + `</cbc:Description>
		</cac:ExternalReference>
	</cac:Attachment>
</AttachedDocument>`
}

func TestClassify(t *testing.T) {
	tests := []struct {
		hint     string
		expected container.Kind
	}{
		{"factura.xml", container.KindXML},
		{"FACTURA.XML", container.KindXML},
		{"lote/factura.zip", container.KindZip},
		{".zip", container.KindZip},
		{"xml", container.KindXML},
		{"ZIP", container.KindZip},
		{"factura.pdf", container.KindUnknown},
		{"factura", container.KindUnknown},
		{"", container.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			assert.Equal(t, tt.expected, container.Classify(tt.hint))
		})
	}
}

func TestResolve_BareXML(t *testing.T) {
	p, err := container.NewResolver().Resolve([]byte(minimalInvoice), "factura.xml")
	require.NoError(t, err)

	assert.Equal(t, container.KindXML, p.Container)
	assert.Equal(t, container.SourceInvoice, p.Source)
	assert.Equal(t, "Invoice", p.Root.Tag)
	assert.Equal(t, []byte(minimalInvoice), p.XML)
	assert.Empty(t, p.Member)
}

func TestResolve_ByteOrderMark(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, minimalInvoice...)
	p, err := container.NewResolver().Resolve(data, "factura.xml")
	require.NoError(t, err)
	assert.Equal(t, "Invoice", p.Root.Tag)
}

func TestResolve_Latin1(t *testing.T) {
	data := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Invoice xmlns:cbc=\"c\"><cbc:Note>Bogot\xe1</cbc:Note></Invoice>")
	p, err := container.NewResolver().Resolve(data, "factura.xml")
	require.NoError(t, err)

	note := p.Root.ChildElements()[0]
	assert.Equal(t, "Bogotá", note.Text())
}

func TestResolve_AttachmentLatin1(t *testing.T) {
	inner := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Invoice xmlns:cbc=\"c\"><cbc:Note>Bogot\xe1</cbc:Note></Invoice>"
	outer := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" + attachedDocument(inner)

	r := container.NewResolver()
	direct, err := r.Resolve([]byte(inner), "factura.xml")
	require.NoError(t, err)
	attached, err := r.Resolve([]byte(outer), "attached.xml")
	require.NoError(t, err)

	assert.Equal(t, container.SourceAttachment, attached.Source)
	assert.Equal(t, "Invoice", attached.Root.Tag)
	note := attached.Root.ChildElements()[0]
	assert.Equal(t, "Bogotá", note.Text())
	assert.Equal(t, direct.Root.ChildElements()[0].Text(), note.Text())
}

func TestResolve_CreditNote(t *testing.T) {
	p, err := container.NewResolver().Resolve([]byte(minimalCreditNote), "nota.xml")
	require.NoError(t, err)
	assert.Equal(t, container.SourceCreditNote, p.Source)
	assert.Equal(t, "CreditNote", p.Root.Tag)
}

func TestResolve_NestedInvoice(t *testing.T) {
	data := `<Envelope><Body>` + `<Invoice xmlns:cbc="c"><cbc:ID>FE-9</cbc:ID></Invoice>` + `</Body></Envelope>`
	p, err := container.NewResolver().Resolve([]byte(data), "envelope.xml")
	require.NoError(t, err)

	assert.Equal(t, container.SourceInvoice, p.Source)
	assert.Equal(t, "Invoice", p.Root.Tag)
	assert.Contains(t, string(p.XML), "FE-9")
	assert.NotContains(t, string(p.XML), "Envelope")
}

func TestResolve_Zip(t *testing.T) {
	data := buildZip(t,
		zipEntry{"readme.txt", "not xml"},
		zipEntry{"factura.xml", minimalInvoice},
		zipEntry{"second.xml", minimalCreditNote},
	)

	p, err := container.NewResolver().Resolve(data, "lote.zip")
	require.NoError(t, err)

	assert.Equal(t, container.KindZip, p.Container)
	assert.Equal(t, "factura.xml", p.Member)
	assert.Equal(t, container.SourceInvoice, p.Source)
	assert.Equal(t, []byte(minimalInvoice), p.XML)
}

func TestResolve_ZipUppercaseExtension(t *testing.T) {
	data := buildZip(t, zipEntry{"FACTURA.XML", minimalCreditNote})

	p, err := container.NewResolver().Resolve(data, "LOTE.ZIP")
	require.NoError(t, err)
	assert.Equal(t, "FACTURA.XML", p.Member)
	assert.Equal(t, "CreditNote", p.Root.Tag)
}

func TestResolve_Attachment(t *testing.T) {
	p, err := container.NewResolver().Resolve([]byte(attachedDocument(minimalInvoice)), "ad.xml")
	require.NoError(t, err)

	assert.Equal(t, container.SourceAttachment, p.Source)
	assert.Equal(t, "Invoice", p.Root.Tag)
	assert.Equal(t, minimalInvoice, string(p.XML))
}

func TestResolve_AttachmentCDATA(t *testing.T) {
	data := `<AttachedDocument xmlns:cac="a" xmlns:cbc="c"><cac:Attachment><cac:ExternalReference>
		<cbc:Description><![CDATA[` + minimalCreditNote + `]]></cbc:Description>
	</cac:ExternalReference></cac:Attachment></AttachedDocument>`

	p, err := container.NewResolver().Resolve([]byte(data), "ad.xml")
	require.NoError(t, err)
	assert.Equal(t, container.SourceAttachment, p.Source)
	assert.Equal(t, "CreditNote", p.Root.Tag)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		hint     string
		expected error
	}{
		{
			name:     "unsupported extension",
			data:     []byte(minimalInvoice),
			hint:     "factura.pdf",
			expected: model.ErrUnsupportedContainer,
		},
		{
			name:     "missing hint",
			data:     []byte(minimalInvoice),
			hint:     "",
			expected: model.ErrUnsupportedContainer,
		},
		{
			name:     "zip without xml member",
			data:     buildZip(t, zipEntry{"factura.pdf", "%PDF-1.4"}, zipEntry{"xml/", ""}),
			hint:     "lote.zip",
			expected: model.ErrNoXMLInArchive,
		},
		{
			name:     "empty zip",
			data:     buildZip(t),
			hint:     "lote.zip",
			expected: model.ErrNoXMLInArchive,
		},
		{
			name:     "not a zip",
			data:     []byte(minimalInvoice),
			hint:     "lote.zip",
			expected: model.ErrUnreadableArchive,
		},
		{
			name:     "malformed xml",
			data:     []byte(`<Invoice><<cbc:ID>1</cbc:ID></Invoice>`),
			hint:     "factura.xml",
			expected: model.ErrMalformedXML,
		},
		{
			name:     "empty xml",
			data:     []byte(""),
			hint:     "factura.xml",
			expected: model.ErrMalformedXML,
		},
		{
			name:     "no invoice root",
			data:     []byte(`<Order xmlns:cbc="c"><cbc:ID>1</cbc:ID><Lines><Line>1</Line></Lines></Order>`),
			hint:     "order.xml",
			expected: model.ErrNoInvoiceRoot,
		},
		{
			name:     "attachment without description",
			data:     []byte(`<AttachedDocument><Attachment><ExternalReference/></Attachment></AttachedDocument>`),
			hint:     "ad.xml",
			expected: model.ErrNoInvoiceRoot,
		},
		{
			name:     "attachment with non xml description",
			data:     []byte(attachedDocument("just some words")),
			hint:     "ad.xml",
			expected: model.ErrMalformedXML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := container.NewResolver().Resolve(tt.data, tt.hint)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestResolve_MemberTooLarge(t *testing.T) {
	data := buildZip(t, zipEntry{"factura.xml", minimalInvoice})

	_, err := container.NewResolver(container.WithMaxMemberSize(16)).Resolve(data, "lote.zip")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMemberTooLarge)

	_, err = container.NewResolver(container.WithMaxMemberSize(0)).Resolve(data, "lote.zip")
	assert.NoError(t, err)
}

func TestMembers(t *testing.T) {
	data := buildZip(t,
		zipEntry{"docs/", ""},
		zipEntry{"docs/factura.xml", minimalInvoice},
		zipEntry{"firma.p7s", "sig"},
	)

	members, err := container.Members(data)
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, "docs/factura.xml", members[0].Name)
	assert.True(t, members[0].XML)
	assert.Equal(t, uint64(len(minimalInvoice)), members[0].Size)
	assert.Equal(t, "firma.p7s", members[1].Name)
	assert.False(t, members[1].XML)

	_, err = container.Members([]byte("not a zip"))
	assert.ErrorIs(t, err, model.ErrUnreadableArchive)
}
