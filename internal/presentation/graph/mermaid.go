// Package graph renders the loaded device model as a Mermaid diagram for
// quick visual inspection through the serving interface.
package graph

import (
	"fmt"
	"strings"

	"github.com/weftworks/genloom/internal/store"
)

// GenerateMermaid produces Mermaid flowchart syntax for a device model.
// Semantic shapes per element kind:
// - Cluster: [[Subroutine]]
// - Attribute: [/Parallelogram/]
// - Command: [Rectangle]
// Manufacturer-specific clusters are linked with a dotted arrow from their
// manufacturer node so vendor extensions stand out from the standard model.
func GenerateMermaid(clusters []store.Cluster) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, c := range clusters {
		clusterID := sanitizeMermaidID(fmt.Sprintf("cluster_%04X_%04X", c.Code, c.ManufacturerCode))
		sb.WriteString(fmt.Sprintf("    %s[[\"%s (0x%04X)\"]]\n", clusterID, c.Name, c.Code))

		if c.ManufacturerCode != 0 {
			mfgID := fmt.Sprintf("mfg_%04X", c.ManufacturerCode)
			sb.WriteString(fmt.Sprintf("    %s((\"0x%04X\"))\n", mfgID, c.ManufacturerCode))
			sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", mfgID, clusterID))
		}

		for _, a := range c.Attributes {
			attrID := fmt.Sprintf("%s_attr_%04X", clusterID, a.Code)
			marker := ""
			if a.Writable {
				marker = " ✎"
			}
			sb.WriteString(fmt.Sprintf("    %s[/\"%s: %s%s\"/]\n", attrID, a.Name, a.Type, marker))
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", clusterID, attrID))
		}

		for _, cmd := range c.Commands {
			cmdID := fmt.Sprintf("%s_cmd_%04X_%s", clusterID, cmd.Code, sanitizeMermaidID(cmd.Source))
			sb.WriteString(fmt.Sprintf("    %s[\"%s (0x%02X)\"]\n", cmdID, cmd.Name, cmd.Code))
			if cmd.Source == "server" {
				// Server-sourced commands flow the other way.
				sb.WriteString(fmt.Sprintf("    %s -->|server| %s\n", cmdID, clusterID))
			} else {
				sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", clusterID, cmd.Source, cmdID))
			}
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
