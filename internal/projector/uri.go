package projector

import (
	"fmt"
	"strings"

	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/ippattr"
	"github.com/Bhavna2020/ippcored/internal/model"
)

func baseURI(scheme string, client collab.ClientEnvelope, resource string) string {
	host := client.Host
	if host == "" {
		host = "localhost"
	}
	if !strings.HasPrefix(resource, "/") {
		resource = "/" + resource
	}
	return fmt.Sprintf("%s://%s:%d%s", scheme, host, client.Port, resource)
}

// projectURIs implements the printer-uri-supported and
// uri-authentication-supported rows, which are positionally paired: entry
// i of one describes entry i of the other.
func projectURIs(p model.Printer, client collab.ClientEnvelope, sys collab.System) []goipp.Attribute {
	var uris, auths []string

	if !sys.TLSOnly() {
		uris = append(uris, baseURI("ipp", client, p.ResourcePath))
		auths = append(auths, "none")
	}
	if !sys.TLSDisabled() {
		uris = append(uris, baseURI("ipps", client, p.ResourcePath))
		if sys.AuthServiceConfigured() {
			auths = append(auths, "basic")
		} else {
			auths = append(auths, "none")
		}
	}
	if len(uris) == 0 {
		return nil
	}
	return []goipp.Attribute{
		ippattr.URIs("printer-uri-supported", uris...),
		ippattr.Keywords("uri-authentication-supported", auths...),
		projectXRI(p, client, sys),
	}
}

func projectXRI(p model.Printer, client collab.ClientEnvelope, sys collab.System) goipp.Attribute {
	var cols []goipp.Value
	if !sys.TLSOnly() {
		col := goipp.Collection{}
		col.Add(goipp.MakeAttribute("xri-authentication", goipp.TagKeyword, goipp.String("none")))
		col.Add(goipp.MakeAttribute("xri-security", goipp.TagKeyword, goipp.String("none")))
		col.Add(goipp.MakeAttribute("xri-uri", goipp.TagURI, goipp.String(baseURI("ipp", client, p.ResourcePath))))
		cols = append(cols, col)
	}
	if !sys.TLSDisabled() {
		auth := "none"
		if sys.AuthServiceConfigured() {
			auth = "basic"
		}
		col := goipp.Collection{}
		col.Add(goipp.MakeAttribute("xri-authentication", goipp.TagKeyword, goipp.String(auth)))
		col.Add(goipp.MakeAttribute("xri-security", goipp.TagKeyword, goipp.String("tls")))
		col.Add(goipp.MakeAttribute("xri-uri", goipp.TagURI, goipp.String(baseURI("ipps", client, p.ResourcePath))))
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return goipp.MakeAttribute("printer-xri-supported", goipp.TagNoValue, goipp.Void{})
	}
	return goipp.MakeAttr("printer-xri-supported", goipp.TagBeginCollection, cols[0], cols[1:]...)
}

// projectIcons implements the printer-icons row.
func projectIcons(p model.Printer, client collab.ClientEnvelope, sys collab.System) []goipp.Attribute {
	if len(p.Icons) > 0 {
		return []goipp.Attribute{ippattr.URIs("printer-icons", p.Icons...)}
	}
	base := baseURI("https", client, p.ResourcePath)
	return []goipp.Attribute{ippattr.URIs("printer-icons",
		base+"/icon-sm.png", base+"/icon-md.png", base+"/icon-lg.png")}
}

// projectStringsURI implements the printer-strings-uri row: the first
// resource whose language matches the request's natural-language, or its
// base language, emitted at most once.
func projectStringsURI(p model.Printer, sys collab.System, req *goipp.Message) (goipp.Attribute, bool) {
	resources := sys.Resources()
	if len(resources) == 0 || req == nil {
		return goipp.Attribute{}, false
	}
	lang := ippattr.String(req.Operation, "attributes-natural-language")
	base := lang
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		base = lang[:i]
	}
	for _, r := range resources {
		if r.Language == lang || (base != "" && r.Language == base) {
			return ippattr.URIs("printer-strings-uri", r.Path), true
		}
	}
	return goipp.Attribute{}, false
}
