package dispatch

import (
	"fmt"
	"strings"

	"github.com/Bhavna2020/ippcored/internal/collab"
	"github.com/Bhavna2020/ippcored/internal/model"
)

func resourceURI(client collab.ClientEnvelope, resource string) string {
	scheme := "ipp"
	if client.TLS {
		scheme = "ipps"
	}
	host := client.Host
	if host == "" {
		host = "localhost"
	}
	if !strings.HasPrefix(resource, "/") {
		resource = "/" + resource
	}
	return fmt.Sprintf("%s://%s:%d%s", scheme, host, client.Port, resource)
}

func printerURI(client collab.ClientEnvelope, p model.Printer) string {
	return resourceURI(client, p.ResourcePath)
}

func jobURI(client collab.ClientEnvelope, p model.Printer, jobID int64) string {
	return resourceURI(client, fmt.Sprintf("%s/job/%d", p.ResourcePath, jobID))
}
