package docxbuilder

import (
	"fmt"
	"sync"

	"github.com/kundan048/docx-builder/pkg/docxbuilder/opc"
)

const (
	nsW = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	nsR = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	nsA = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`

	relTypePrefix = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	wmlTypePrefix = "application/vnd.openxmlformats-officedocument.wordprocessingml."
)

// templatePart is one part of the built-in host template.
type templatePart struct {
	name    string
	relID   string // relationship id in word/_rels/document.xml.rels, if any
	relType string
	content string
}

// The shared parts carry the fixed relationship ids imports are merged under.
var templateParts = []templatePart{
	{name: "word/styles.xml", relID: "rId1", relType: "styles", content: templateStyles},
	{name: "word/settings.xml", relID: "rId2", relType: "settings", content: templateSettings},
	{name: "word/webSettings.xml", relID: "rId3", relType: "webSettings", content: templateWebSettings},
	{name: "word/footnotes.xml", relID: "rId4", relType: "footnotes", content: templateFootnotes},
	{name: "word/endnotes.xml", relID: "rId5", relType: "endnotes", content: templateEndnotes},
	{name: "word/header1.xml", relID: "rId6", relType: "header", content: templateHeader},
	{name: "word/footer1.xml", relID: "rId7", relType: "footer", content: templateFooter},
	{name: "word/fontTable.xml", relID: "rId8", relType: "fontTable", content: templateFontTable},
	{name: "word/theme/theme1.xml", relID: "rId9", relType: "theme", content: templateTheme},
}

const templateContentTypes = opc.XMLDeclaration + `
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="` + wmlTypePrefix + `document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="` + wmlTypePrefix + `styles+xml"/>` +
	`<Override PartName="/word/settings.xml" ContentType="` + wmlTypePrefix + `settings+xml"/>` +
	`<Override PartName="/word/webSettings.xml" ContentType="` + wmlTypePrefix + `webSettings+xml"/>` +
	`<Override PartName="/word/footnotes.xml" ContentType="` + wmlTypePrefix + `footnotes+xml"/>` +
	`<Override PartName="/word/endnotes.xml" ContentType="` + wmlTypePrefix + `endnotes+xml"/>` +
	`<Override PartName="/word/header1.xml" ContentType="` + wmlTypePrefix + `header+xml"/>` +
	`<Override PartName="/word/footer1.xml" ContentType="` + wmlTypePrefix + `footer+xml"/>` +
	`<Override PartName="/word/fontTable.xml" ContentType="` + wmlTypePrefix + `fontTable+xml"/>` +
	`<Override PartName="/word/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>` +
	`</Types>`

const templatePackageRels = opc.XMLDeclaration + `
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relTypePrefix + `officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const templateDocument = opc.XMLDeclaration + `
<w:document ` + nsW + ` ` + nsR + `><w:body>` +
	`<w:p><w:r><w:t>{{@body}}</w:t></w:r></w:p>` +
	`<w:sectPr>` +
	`<w:headerReference w:type="default" r:id="rId6"/>` +
	`<w:footerReference w:type="default" r:id="rId7"/>` +
	`<w:pgSz w:w="11906" w:h="16838"/>` +
	`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/>` +
	`</w:sectPr>` +
	`</w:body></w:document>`

const templateStyles = opc.XMLDeclaration + `
<w:styles ` + nsW + `>` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:asciiTheme="minorHAnsi" w:hAnsiTheme="minorHAnsi"/>` +
	`<w:sz w:val="22"/></w:rPr></w:rPrDefault><w:pPrDefault/></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/>` +
	`<w:tblPr><w:tblInd w:w="0" w:type="dxa"/><w:tblCellMar><w:left w:w="108" w:type="dxa"/>` +
	`<w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>` +
	`</w:styles>`

const templateSettings = opc.XMLDeclaration + `
<w:settings ` + nsW + `>` +
	`<w:defaultTabStop w:val="708"/>` +
	`<w:footnotePr><w:footnote w:id="-1"/><w:footnote w:id="0"/></w:footnotePr>` +
	`<w:endnotePr><w:endnote w:id="-1"/><w:endnote w:id="0"/></w:endnotePr>` +
	`<w:compat><w:compatSetting w:name="compatibilityMode" w:uri="http://schemas.microsoft.com/office/word" w:val="15"/></w:compat>` +
	`</w:settings>`

const templateWebSettings = opc.XMLDeclaration + `
<w:webSettings ` + nsW + `><w:optimizeForBrowser/></w:webSettings>`

const templateFootnotes = opc.XMLDeclaration + `
<w:footnotes ` + nsW + `>` +
	`<w:footnote w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:footnote>` +
	`<w:footnote w:type="continuationSeparator" w:id="0"><w:p><w:r><w:continuationSeparator/></w:r></w:p></w:footnote>` +
	`</w:footnotes>`

const templateEndnotes = opc.XMLDeclaration + `
<w:endnotes ` + nsW + `>` +
	`<w:endnote w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:endnote>` +
	`<w:endnote w:type="continuationSeparator" w:id="0"><w:p><w:r><w:continuationSeparator/></w:r></w:p></w:endnote>` +
	`</w:endnotes>`

const templateHeader = opc.XMLDeclaration + `
<w:hdr ` + nsW + ` ` + nsR + `><w:p><w:r><w:t>{{@header}}</w:t></w:r></w:p></w:hdr>`

const templateFooter = opc.XMLDeclaration + `
<w:ftr ` + nsW + ` ` + nsR + `><w:p><w:r><w:t>{{@footer}}</w:t></w:r></w:p></w:ftr>`

const templateFontTable = opc.XMLDeclaration + `
<w:fonts ` + nsW + `>` +
	`<w:font w:name="Calibri"><w:panose1 w:val="020F0502020204030204"/><w:charset w:val="00"/><w:family w:val="swiss"/><w:pitch w:val="variable"/></w:font>` +
	`<w:font w:name="Times New Roman"><w:panose1 w:val="02020603050405020304"/><w:charset w:val="00"/><w:family w:val="roman"/><w:pitch w:val="variable"/></w:font>` +
	`</w:fonts>`

const templateTheme = opc.XMLDeclaration + `
<a:theme ` + nsA + ` name="Office Theme"><a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1><a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Office">` +
	`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
	`<a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
	`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
	`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements></a:theme>`

var (
	defaultTemplate     *opc.Archive
	defaultTemplateOnce sync.Once
)

// DefaultTemplate returns the built-in host template. Callers must not modify it;
// merging works on a copy.
func DefaultTemplate() *opc.Archive {
	defaultTemplateOnce.Do(func() {
		defaultTemplate = buildDefaultTemplate()
	})
	return defaultTemplate
}

// DefaultTemplateBytes returns the built-in host template as a .docx file.
func DefaultTemplateBytes() ([]byte, error) {
	data, err := DefaultTemplate().Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize default template: %w", err)
	}
	return data, nil
}

func buildDefaultTemplate() *opc.Archive {
	pkg := opc.New()
	pkg.Write(opc.ContentTypesPart, []byte(templateContentTypes))
	pkg.Write(opc.PackageRelsPart, []byte(templatePackageRels))
	pkg.Write(opc.DocumentPart, []byte(templateDocument))

	rels := opc.XMLDeclaration + "\n" + `<Relationships xmlns="` + opc.RelationshipsNS + `">`
	for _, part := range templateParts {
		rel := opc.Relationship{
			ID:     part.relID,
			Type:   relTypePrefix + part.relType,
			Target: part.name[len("word/"):],
		}
		rels += rel.Markup()
	}
	rels += `</Relationships>`
	pkg.Write(opc.DocumentRelsPart, []byte(rels))

	for _, part := range templateParts {
		pkg.Write(part.name, []byte(part.content))
	}
	return pkg
}
