// Package argbuild compiles a format descriptor and a selected settings map
// into the argument list of the second transcoding stage.
//
// A selection holding the quality category treats that option's value as a
// template: every other category's value replaces its {category}
// placeholder and is not appended separately. Without the quality category
// the selected values are concatenated in selection order. The final list is
// always "-i <input> <settings tokens...> <output>".
package argbuild
