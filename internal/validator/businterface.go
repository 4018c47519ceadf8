package validator

import (
	"fmt"
	"slices"

	"ipxcheck/internal/expression"
	"ipxcheck/internal/memory"
	"ipxcheck/internal/model"
	"ipxcheck/internal/revision"
)

var (
	systemModes = []string{"system", "mirroredSystem"}
	endianness  = []string{"", "big", "little"}
)

// PortMapValidator validates the port maps of one abstraction type.
type PortMapValidator struct {
	checker
	component   *model.Component
	abstraction *model.AbstractionDefinition
}

// NewPortMapValidator returns a validator mapping logical ports of abs onto
// physical ports of c. A nil abs skips the logical port lookup.
func NewPortMapValidator(eval *expression.Evaluator, c *model.Component, abs *model.AbstractionDefinition) *PortMapValidator {
	return &PortMapValidator{checker: checker{eval: eval}, component: c, abstraction: abs}
}

func (v *PortMapValidator) validRange(r *model.Range) bool {
	return r == nil || (v.nonNegative(r.Left) && v.nonNegative(r.Right))
}

func (v *PortMapValidator) logicalFound(pm *model.PortMap) bool {
	return v.abstraction == nil || v.abstraction.HasPort(pm.LogicalPort.Name)
}

func (v *PortMapValidator) physicalFound(pm *model.PortMap) bool {
	return pm.PhysicalPort == nil || v.component.Model.FindPort(pm.PhysicalPort.Name) != nil
}

// hasOneTarget reports whether the logical port is mapped to exactly one
// of a physical port or a tie off.
func hasOneTarget(pm *model.PortMap) bool {
	return (pm.PhysicalPort != nil) != (pm.LogicalTieOff != "")
}

// Validate reports whether pm is valid.
func (v *PortMapValidator) Validate(pm *model.PortMap) bool {
	return v.presence(pm.IsPresent) &&
		validName(pm.LogicalPort.Name) &&
		v.logicalFound(pm) &&
		v.validRange(pm.LogicalPort.Range) &&
		hasOneTarget(pm) &&
		v.physicalFound(pm) &&
		(pm.PhysicalPort == nil || v.validRange(pm.PhysicalPort.PartSelect)) &&
		v.optionalExpr(pm.LogicalTieOff)
}

// FindErrorsIn appends the defects of pm.
func (v *PortMapValidator) FindErrorsIn(errs []string, pm *model.PortMap, context string) []string {
	name := pm.LogicalPort.Name
	if !v.presence(pm.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for port map %s within %s", name, context))
	}
	switch {
	case !validName(name):
		errs = append(errs, fmt.Sprintf("Logical port name is not set for port map within %s", context))
	case !v.logicalFound(pm):
		errs = append(errs, fmt.Sprintf("Could not find logical port %s within %s", name, context))
	}
	if !v.validRange(pm.LogicalPort.Range) {
		errs = append(errs, fmt.Sprintf("Invalid range set for logical port %s within %s", name, context))
	}
	if !hasOneTarget(pm) {
		errs = append(errs, fmt.Sprintf("Logical port %s within %s must be mapped to either a physical port or a tie off",
			name, context))
	}
	if p := pm.PhysicalPort; p != nil {
		if !v.physicalFound(pm) {
			errs = append(errs, fmt.Sprintf("Could not find physical port %s mapped to logical port %s within %s",
				p.Name, name, context))
		}
		if !v.validRange(p.PartSelect) {
			errs = append(errs, fmt.Sprintf("Invalid part select set for physical port %s within %s", p.Name, context))
		}
	}
	if !v.optionalExpr(pm.LogicalTieOff) {
		errs = append(errs, fmt.Sprintf("Invalid tie off value set for logical port %s within %s", name, context))
	}
	return errs
}

// BusInterfaceValidator validates the bus interfaces of a component.
//
// A nil library skips the bus and abstraction definition lookups.
type BusInterfaceValidator struct {
	checker
	rules     *revision.Rules
	component *model.Component
	library   *model.Library
	params    *ParameterValidator
}

// NewBusInterfaceValidator returns a validator for the bus interfaces of c.
func NewBusInterfaceValidator(eval *expression.Evaluator, c *model.Component, lib *model.Library,
	rules *revision.Rules) *BusInterfaceValidator {
	return &BusInterfaceValidator{
		checker:   checker{eval: eval},
		rules:     rules,
		component: c,
		library:   lib,
		params:    NewParameterValidator(eval, c.Choices, rules),
	}
}

func (v *BusInterfaceValidator) busDefinition(bi *model.BusInterface) *model.BusDefinition {
	return v.library.BusDefinition(bi.BusType)
}

func (v *BusInterfaceValidator) busTypeFound(bi *model.BusInterface) bool {
	return v.library == nil || v.busDefinition(bi) != nil
}

func (v *BusInterfaceValidator) validAddressSpaceRef(bi *model.BusInterface) bool {
	return bi.AddressSpaceRef == "" || v.component.HasAddressSpace(bi.AddressSpaceRef)
}

func (v *BusInterfaceValidator) validMemoryMapRef(bi *model.BusInterface) bool {
	return bi.MemoryMapRef == "" || v.component.HasMemoryMap(bi.MemoryMapRef)
}

// validGroup requires a system group for system modes. When the bus
// definition is known the group must be one of its system group names.
func (v *BusInterfaceValidator) validGroup(bi *model.BusInterface) bool {
	if !slices.Contains(systemModes, bi.Mode) {
		return true
	}
	if model.IsBlank(bi.Group) {
		return false
	}
	if v.library == nil {
		return true
	}
	def := v.busDefinition(bi)
	return def == nil || slices.Contains(def.SystemGroupNames, bi.Group)
}

func (v *BusInterfaceValidator) validBitSteering(s string) bool {
	switch s {
	case "", "on", "off":
		return true
	}
	return v.boolExpr(s)
}

// Validate reports whether bi is valid.
func (v *BusInterfaceValidator) Validate(bi *model.BusInterface) bool {
	return validName(bi.Name) &&
		v.presence(bi.IsPresent) &&
		bi.BusType.Valid() &&
		v.busTypeFound(bi) &&
		v.rules.InterfaceModeAllowed(bi.Mode) &&
		v.validAddressSpaceRef(bi) &&
		v.validMemoryMapRef(bi) &&
		v.validGroup(bi) &&
		v.optionalPositive(bi.BitsInLau) &&
		v.validBitSteering(bi.BitSteering) &&
		slices.Contains(endianness, bi.Endianness) &&
		v.validAbstractionTypes(bi) &&
		v.params.ValidateList(bi.Parameters)
}

// FindErrorsIn appends the defects of bi.
func (v *BusInterfaceValidator) FindErrorsIn(errs []string, bi *model.BusInterface, context string) []string {
	if !validName(bi.Name) {
		errs = append(errs, fmt.Sprintf("Invalid name specified for bus interface %s within %s", bi.Name, context))
	}
	if !v.presence(bi.IsPresent) {
		errs = append(errs, fmt.Sprintf("Invalid isPresent set for bus interface %s within %s", bi.Name, context))
	}
	switch {
	case !bi.BusType.Valid():
		errs = append(errs, fmt.Sprintf("Invalid bus type set for bus interface %s within %s", bi.Name, context))
	case !v.busTypeFound(bi):
		errs = append(errs, fmt.Sprintf("Could not find bus definition %s referenced by bus interface %s within %s",
			bi.BusType, bi.Name, context))
	}
	if !v.rules.InterfaceModeAllowed(bi.Mode) {
		errs = append(errs, fmt.Sprintf("Invalid interface mode %s set for bus interface %s within %s",
			bi.Mode, bi.Name, context))
	}
	if !v.validAddressSpaceRef(bi) {
		errs = append(errs, fmt.Sprintf("Could not find address space %s referenced by bus interface %s within %s",
			bi.AddressSpaceRef, bi.Name, context))
	}
	if !v.validMemoryMapRef(bi) {
		errs = append(errs, fmt.Sprintf("Could not find memory map %s referenced by bus interface %s within %s",
			bi.MemoryMapRef, bi.Name, context))
	}
	if !v.validGroup(bi) {
		errs = append(errs, fmt.Sprintf("Invalid system group %s set for bus interface %s within %s",
			bi.Group, bi.Name, context))
	}
	if !v.optionalPositive(bi.BitsInLau) {
		errs = append(errs, fmt.Sprintf("Invalid bits in LAU set for bus interface %s within %s", bi.Name, context))
	}
	if !v.validBitSteering(bi.BitSteering) {
		errs = append(errs, fmt.Sprintf("Invalid bit steering value set for bus interface %s within %s", bi.Name, context))
	}
	if !slices.Contains(endianness, bi.Endianness) {
		errs = append(errs, fmt.Sprintf("Invalid endianness %s set for bus interface %s within %s",
			bi.Endianness, bi.Name, context))
	}
	inner := within("bus interface", bi.Name, context)
	errs = v.findErrorsInAbstractionTypes(errs, bi, inner)
	return v.params.FindErrorsInList(errs, bi.Parameters, inner)
}

func (v *BusInterfaceValidator) abstraction(at *model.AbstractionType) *model.AbstractionDefinition {
	return v.library.AbstractionDefinition(at.AbstractionRef)
}

func (v *BusInterfaceValidator) abstractionFound(at *model.AbstractionType) bool {
	return v.library == nil || v.abstraction(at) != nil
}

func (v *BusInterfaceValidator) unknownViews(at *model.AbstractionType) []string {
	var unknown []string
	for _, ref := range at.ViewRefs {
		if v.component.Model.FindView(ref) == nil {
			unknown = append(unknown, ref)
		}
	}
	return unknown
}

// sharedViews returns the views referenced by more than one abstraction type.
func sharedViews(types []model.AbstractionType) []string {
	var refs []string
	for _, at := range types {
		own := slices.Clone(at.ViewRefs)
		slices.Sort(own)
		refs = append(refs, slices.Compact(own)...)
	}
	return Duplicates(refs)
}

func (v *BusInterfaceValidator) portMaps(at *model.AbstractionType) *PortMapValidator {
	var abs *model.AbstractionDefinition
	if v.library != nil {
		abs = v.abstraction(at)
	}
	return NewPortMapValidator(v.eval, v.component, abs)
}

// logicalReserve collects the logical bit ranges of the present port maps
// of at, keyed by logical port name. A map without range covers bit 0.
func (v *BusInterfaceValidator) logicalReserve(at *model.AbstractionType) *memory.Reserve {
	var res memory.Reserve
	for _, pm := range at.PortMaps {
		if model.IsBlank(pm.LogicalPort.Name) || !v.present(pm.IsPresent) {
			continue
		}
		var begin, end uint64
		if r := pm.LogicalPort.Range; r != nil {
			left, ok1 := v.unsigned(r.Left)
			right, ok2 := v.unsigned(r.Right)
			if !ok1 || !ok2 {
				continue
			}
			begin, end = min(left, right), max(left, right)
		}
		res.AddArea(pm.LogicalPort.Name, begin, end)
	}
	return &res
}

func (v *BusInterfaceValidator) validAbstractionTypes(bi *model.BusInterface) bool {
	if len(sharedViews(bi.AbstractionTypes)) > 0 {
		return false
	}
	for i := range bi.AbstractionTypes {
		at := &bi.AbstractionTypes[i]
		if !at.AbstractionRef.Valid() || !v.abstractionFound(at) || len(v.unknownViews(at)) > 0 {
			return false
		}
		maps := v.portMaps(at)
		for j := range at.PortMaps {
			if !maps.Validate(&at.PortMaps[j]) {
				return false
			}
		}
		if v.logicalReserve(at).HasIdentifierOverlap() {
			return false
		}
	}
	return true
}

func (v *BusInterfaceValidator) findErrorsInAbstractionTypes(errs []string, bi *model.BusInterface, context string) []string {
	for _, ref := range sharedViews(bi.AbstractionTypes) {
		errs = append(errs, fmt.Sprintf("View %s is referenced by multiple abstraction types within %s", ref, context))
	}
	for i := range bi.AbstractionTypes {
		at := &bi.AbstractionTypes[i]
		switch {
		case !at.AbstractionRef.Valid():
			errs = append(errs, fmt.Sprintf("Invalid abstraction reference set for abstraction type within %s", context))
		case !v.abstractionFound(at):
			errs = append(errs, fmt.Sprintf("Could not find abstraction definition %s referenced within %s",
				at.AbstractionRef, context))
		}
		for _, ref := range v.unknownViews(at) {
			errs = append(errs, fmt.Sprintf("Could not find view %s referenced by abstraction type within %s", ref, context))
		}
		maps := v.portMaps(at)
		for j := range at.PortMaps {
			errs = maps.FindErrorsIn(errs, &at.PortMaps[j], context)
		}
		errs = v.logicalReserve(at).FindErrorsInMultipleDefinitions(errs, "logical port", context)
	}
	return errs
}
