package tag

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidTag is returned when a tag definition does not pass validation
var ErrInvalidTag = errors.New("invalid tag")

// Type is the process category of a tag
type Type string

const (
	// TypeCMA is a Critical Material Attribute
	TypeCMA Type = "CMA"
	// TypeCPP is a Critical Process Parameter
	TypeCPP Type = "CPP"
	// TypeCQA is a Critical Quality Attribute
	TypeCQA Type = "CQA"
)

// Types lists every tag type in display order
var Types = []Type{TypeCMA, TypeCPP, TypeCQA}

// IsValid checks the type is one of the known categories
func (t Type) IsValid() bool {
	switch t {
	case TypeCMA, TypeCPP, TypeCQA:
		return true
	}
	return false
}

var subTypes = map[string]bool{
	"Ratio": true, "Time": true, "Speed": true, "Temp": true, "Pressure": true,
	"Shear": true, "Diameter": true, "PH": true, "Zeta": true,
}

var opcNodeIDPattern = regexp.MustCompile(`^ns=\d+;s=\S+$`)

// TagConfig maps a process variable to an OPC-UA node
type TagConfig struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OpcNodeID   string `json:"opcNodeId"`
	Unit        string `json:"unit"`
	Type        Type   `json:"type"`
	SubType     string `json:"subType,omitempty"`
}

// IsValid checks if a tag definition is valid and has no missing mandatory fields
func (t TagConfig) IsValid() (bool, error) {
	if t.Name == "" {
		return false, fmt.Errorf("%w: missing name", ErrInvalidTag)
	}
	if len(t.Name) > 64 {
		return false, fmt.Errorf("%w: name longer than 64 characters", ErrInvalidTag)
	}
	if t.OpcNodeID == "" {
		return false, fmt.Errorf("%w: missing opcNodeId", ErrInvalidTag)
	}
	if !opcNodeIDPattern.MatchString(t.OpcNodeID) {
		return false, fmt.Errorf("%w: opcNodeId %q must look like ns=<n>;s=<id>", ErrInvalidTag, t.OpcNodeID)
	}
	if !t.Type.IsValid() {
		return false, fmt.Errorf("%w: unknown type %q", ErrInvalidTag, t.Type)
	}
	if t.SubType != "" && !subTypes[t.SubType] {
		return false, fmt.Errorf("%w: unknown subType %q", ErrInvalidTag, t.SubType)
	}
	return true, nil
}

// DefaultTags returns the tag mapping of a fresh installation
func DefaultTags() []TagConfig {
	return []TagConfig{
		{ID: "1", Name: "Material Ratio A/B", Description: "Mixing ratio of main component", OpcNodeID: "ns=2;s=MixRatio", Unit: "%", Type: TypeCMA, SubType: "Ratio"},
		{ID: "2", Name: "Injection Time", Description: "Moment of catalyst injection", OpcNodeID: "ns=2;s=InjTime", Unit: "sec", Type: TypeCMA, SubType: "Time"},
		{ID: "3", Name: "Reactor Temp", Description: "Main reactor internal temperature", OpcNodeID: "ns=2;s=ReactTemp", Unit: "°C", Type: TypeCPP, SubType: "Temp"},
		{ID: "4", Name: "Vessel Pressure", Description: "Internal pressure during reaction", OpcNodeID: "ns=2;s=VessPress", Unit: "bar", Type: TypeCPP, SubType: "Pressure"},
		{ID: "5", Name: "Shear Speed", Description: "Agitator rotation speed", OpcNodeID: "ns=2;s=ShearSpd", Unit: "rpm", Type: TypeCPP, SubType: "Shear"},
		{ID: "6", Name: "Particle Diameter", Description: "D50 mean diameter", OpcNodeID: "ns=2;s=PartDiam", Unit: "nm", Type: TypeCQA, SubType: "Diameter"},
		{ID: "7", Name: "PH Level", Description: "Final PH value", OpcNodeID: "ns=2;s=FinPH", Unit: "pH", Type: TypeCQA, SubType: "PH"},
		{ID: "8", Name: "Zeta Potential", Description: "Surface charge", OpcNodeID: "ns=2;s=Zeta", Unit: "mV", Type: TypeCQA, SubType: "Zeta"},
	}
}

// Deployment is the mapping pushed to the gateway, grouped by tag type
type Deployment struct {
	NodeCount int                  `json:"nodeCount"`
	Groups    map[Type][]TagConfig `json:"groups"`
}

// BuildDeployment groups tags by type. Every type is present, even when empty.
func BuildDeployment(tags []TagConfig) Deployment {
	d := Deployment{Groups: make(map[Type][]TagConfig, len(Types))}
	for _, t := range Types {
		d.Groups[t] = make([]TagConfig, 0)
	}
	for _, t := range tags {
		d.Groups[t.Type] = append(d.Groups[t.Type], t)
		d.NodeCount++
	}
	return d
}
