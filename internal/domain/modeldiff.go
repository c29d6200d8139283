package domain

import "reflect"

// ModelChange classifies the difference between two model shapes.
type ModelChange int

const (
	// ModelChangeNone means the shapes are identical.
	ModelChangeNone ModelChange = iota
	// ModelChangePatch means only compatible details changed, such as
	// descriptions or length constraints.
	ModelChangePatch
	// ModelChangeAdditive means models or fields were added.
	ModelChangeAdditive
	// ModelChangeBreaking means models or fields were removed, a field
	// changed its type, or an optional field became required.
	ModelChangeBreaking
)

// CompareModelShapes classifies how the model shape changed between two
// revisions of a contract. The most severe change wins.
func CompareModelShapes(old, updated map[string]Model) ModelChange {
	change := ModelChangeNone
	for name, oldModel := range old {
		newModel, ok := updated[name]
		if !ok {
			return ModelChangeBreaking
		}
		change = maxChange(change, compareFields(oldModel.Fields, newModel.Fields))
		if change != ModelChangeBreaking && !reflect.DeepEqual(oldModel, newModel) {
			change = maxChange(change, ModelChangePatch)
		}
	}
	for name := range updated {
		if _, ok := old[name]; !ok {
			change = maxChange(change, ModelChangeAdditive)
		}
	}
	return change
}

func compareFields(old, updated map[string]Field) ModelChange {
	change := ModelChangeNone
	for name, oldField := range old {
		newField, ok := updated[name]
		if !ok {
			return ModelChangeBreaking
		}
		if oldField.Type != newField.Type {
			return ModelChangeBreaking
		}
		if !oldField.Required && newField.Required {
			return ModelChangeBreaking
		}
		if !reflect.DeepEqual(oldField, newField) {
			change = maxChange(change, ModelChangePatch)
		}
	}
	for name := range updated {
		if _, ok := old[name]; !ok {
			change = maxChange(change, ModelChangeAdditive)
		}
	}
	return change
}

func maxChange(a, b ModelChange) ModelChange {
	if b > a {
		return b
	}
	return a
}
