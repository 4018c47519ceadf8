package validator

import (
	"testing"

	"ipxcheck/internal/model"
)

func internalPort(instance, port string) model.PortReference {
	return model.PortReference{ComponentRef: instance, PortRef: port}
}

func TestAdHocConnectionFindErrorsIn(t *testing.T) {
	const inner = "ad hoc connection irq within " + ctx
	d := &model.Design{
		Header: model.Header{VLNV: vlnv("soc")},
		ComponentInstances: []model.ComponentInstance{
			uartInstance("u0"),
			{InstanceName: "u1", ComponentRef: model.ConfigurableVLNV{VLNV: vlnv("spi")}},
		},
	}
	tests := []struct {
		name string
		conn model.AdHocConnection
		want []string
	}{
		{
			name: "internal and external ports",
			conn: model.AdHocConnection{
				Name:                   "irq",
				InternalPortReferences: []model.PortReference{internalPort("u0", "irq")},
				ExternalPortReferences: []model.PortReference{{
					PortRef:    "irq_o",
					PartSelect: &model.PartSelect{Range: &model.Range{Left: "3", Right: "0"}},
				}},
			},
		},
		{
			name: "tied to the default value",
			conn: model.AdHocConnection{Name: "irq", TiedValue: "default", InternalPortReferences: []model.PortReference{internalPort("u0", "rx")}},
		},
		{
			name: "tied to an expression",
			conn: model.AdHocConnection{Name: "irq", TiedValue: "'b1", InternalPortReferences: []model.PortReference{internalPort("u0", "irq")}},
		},
		{
			name: "left open",
			conn: model.AdHocConnection{Name: "irq", TiedValue: "open", InternalPortReferences: []model.PortReference{internalPort("u0", "irq")}},
		},
		{
			name: "port of a component outside the library",
			conn: model.AdHocConnection{Name: "irq", InternalPortReferences: []model.PortReference{internalPort("u1", "mosi")}},
		},
		{
			name: "default value missing",
			conn: model.AdHocConnection{Name: "irq", TiedValue: "default", InternalPortReferences: []model.PortReference{internalPort("u0", "irq")}},
			want: []string{"No default value found for port irq referenced by internal port reference in " + inner},
		},
		{
			name: "malformed tied value",
			conn: model.AdHocConnection{Name: "irq", TiedValue: "(", InternalPortReferences: []model.PortReference{internalPort("u0", "irq")}},
			want: []string{"Invalid tied value ( set for ad hoc connection irq within " + ctx},
		},
		{
			name: "no port references",
			conn: model.AdHocConnection{Name: "irq"},
			want: []string{"No port references set for ad hoc connection irq within " + ctx},
		},
		{
			name: "unknown instance",
			conn: model.AdHocConnection{Name: "irq", InternalPortReferences: []model.PortReference{internalPort("u9", "irq")}},
			want: []string{"Could not find component instance u9 referenced by internal port reference in " + inner},
		},
		{
			name: "unknown port",
			conn: model.AdHocConnection{Name: "irq", InternalPortReferences: []model.PortReference{internalPort("u0", "tx")}},
			want: []string{"Could not find port tx of component instance u0 referenced by internal port reference in " + inner},
		},
		{
			name: "missing references",
			conn: model.AdHocConnection{
				Name:                   "irq",
				InternalPortReferences: []model.PortReference{{PortRef: "irq"}},
				ExternalPortReferences: []model.PortReference{{}},
			},
			want: []string{
				"No component reference set for internal port reference in " + inner,
				"No port reference set for external port reference in " + inner,
			},
		},
		{
			name: "bad part selects",
			conn: model.AdHocConnection{
				Name: "irq",
				InternalPortReferences: []model.PortReference{{
					ComponentRef: "u0", PortRef: "irq",
					PartSelect: &model.PartSelect{Range: &model.Range{Left: "x", Right: "0"}, Indices: []string{"0-1"}},
				}},
				ExternalPortReferences: []model.PortReference{{PortRef: "d", PartSelect: &model.PartSelect{}}},
			},
			want: []string{
				"Invalid left value x set for part select in internal port reference irq within " + inner,
				"Invalid index 0-1 set for part select in internal port reference irq within " + inner,
				"No range or index set for part select in external port reference d within " + inner,
			},
		},
		{
			name: "presence",
			conn: model.AdHocConnection{
				Name: "irq", IsPresent: "2",
				InternalPortReferences: []model.PortReference{{ComponentRef: "u0", PortRef: "irq", IsPresent: "3"}},
			},
			want: []string{
				"Invalid isPresent set for ad hoc connection irq within " + ctx,
				"Invalid isPresent set for internal port reference irq in " + inner,
			},
		},
	}
	v := NewAdHocConnectionValidator(evaluator(nil), testLibrary(t), d)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, v, &tt.conn, tt.want)
		})
	}
}
