/*
Package utils contains decorators shared by every handler of the ledger:
panic recovery, per transaction logging, savepoints and action tagging.
*/
package utils
