// Package hclload reads dimension, unit and constant definitions from HCL
// files and translates them into the entry model.
//
// Files are parsed with hclparse and decoded into block structs with gohcl.
// Definition expressions are read straight from the hclsyntax AST rather than
// evaluated, because names in a definition refer to other entries, not to HCL
// variables:
//
//	dimension "Velocity" { value = Length / Time }
//	unit "meters"        { symbol = "m" base = Length dimension = Length }
//	unit "hectare"       { value = 10000 * pow(meters, 2) }
//	constant "c"         { dimension = Velocity value = 299792458 * meters / seconds }
package hclload
