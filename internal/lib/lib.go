// Packages lib acts as a library for modules that do not fit
// strictly into other layers.
package lib
