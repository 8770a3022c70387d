package hclload

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Dimensions []*dimensionBlock `hcl:"dimension,block"`
	Units      []*unitBlock      `hcl:"unit,block"`
	Constants  []*constantBlock  `hcl:"constant,block"`
}

// dimensionBlock declares a base dimension when Value is omitted.
type dimensionBlock struct {
	Name      string         `hcl:"name,label"`
	NameRange hcl.Range      `hcl:"name,label_range"`
	Value     hcl.Expression `hcl:"value,optional"`
	DefRange  hcl.Range      `hcl:",def_range"`
}

// unitBlock declares a base unit (Base set) or a derived unit (Value set).
type unitBlock struct {
	Name      string         `hcl:"name,label"`
	NameRange hcl.Range      `hcl:"name,label_range"`
	Symbol    *string        `hcl:"symbol,optional"`
	Base      hcl.Expression `hcl:"base,optional"`
	Dimension hcl.Expression `hcl:"dimension,optional"`
	Value     hcl.Expression `hcl:"value,optional"`
	DefRange  hcl.Range      `hcl:",def_range"`
}

type constantBlock struct {
	Name      string         `hcl:"name,label"`
	NameRange hcl.Range      `hcl:"name,label_range"`
	Dimension hcl.Expression `hcl:"dimension,optional"`
	Value     hcl.Expression `hcl:"value,optional"`
	DefRange  hcl.Range      `hcl:",def_range"`
}
