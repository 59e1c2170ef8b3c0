/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Every extension owns at most one configuration object, stored under the key
"_c:<package name>". It is loaded from the "conf" section of the genesis
file and read by handlers on every use.
*/
package gconf
