package service

import (
	"github.com/dkavolis/rpcad"
	"github.com/dkavolis/rpcad/dispatch"
)

// Namespace scopes the host event identifiers of this service.
const Namespace = "CadService"

// Operation ids double as batch command names, so they stay stable on the
// wire even if Go method names change.
const (
	opParameter          = "parameter"
	opParameters         = "parameters"
	opOpenProject        = "open_project"
	opSaveProject        = "save_project"
	opCloseProject       = "close_project"
	opExportProject      = "export_project"
	opSetParameter       = "set_parameter"
	opSetParameters      = "set_parameters"
	opUndo               = "undo"
	opReload             = "reload"
	opStatus             = "status"
	opPhysicalProperties = "physical_properties"
)

type setParameterArgs struct {
	name  string
	value rpcad.ParameterValue
}

type setParametersArgs struct {
	parameters map[string]rpcad.ParameterValue
}

type physicalPropertiesArgs struct {
	properties []rpcad.PhysicalProperty
	part       string
	accuracy   rpcad.Accuracy
}

// operations declares every dispatchable call. The explicit table replaces
// the dynamic method wrapping of scripting hosts: each entry is wrapped by
// its own dispatcher when the bridge registers events.
func operations(backend rpcad.Backend) map[string]dispatch.Operation {
	return map[string]dispatch.Operation{
		opParameter: func(payload any) (any, error) {
			return backend.Parameter(payload.(string))
		},
		opParameters: func(payload any) (any, error) {
			return backend.Parameters()
		},
		opOpenProject: func(payload any) (any, error) {
			return nil, backend.OpenProject(payload.(string))
		},
		opSaveProject: func(payload any) (any, error) {
			return nil, backend.SaveProject()
		},
		opCloseProject: func(payload any) (any, error) {
			return nil, backend.CloseProject()
		},
		opExportProject: func(payload any) (any, error) {
			return nil, backend.ExportProject(payload.(string))
		},
		opSetParameter: func(payload any) (any, error) {
			args := payload.(setParameterArgs)
			return nil, backend.SetParameter(args.name, args.value)
		},
		opSetParameters: func(payload any) (any, error) {
			args := payload.(setParametersArgs)
			for name, value := range args.parameters {
				err := backend.SetParameter(name, value)
				if err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
		opUndo: func(payload any) (any, error) {
			return nil, backend.Undo(payload.(int))
		},
		opReload: func(payload any) (any, error) {
			return nil, backend.Reload()
		},
		opStatus: func(payload any) (any, error) {
			return backend.Status()
		},
		opPhysicalProperties: func(payload any) (any, error) {
			args := payload.(physicalPropertiesArgs)
			return backend.PhysicalProperties(args.properties, args.part, args.accuracy)
		},
	}
}
