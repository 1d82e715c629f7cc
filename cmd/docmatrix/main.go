// Docmatrix decides which supporting documents a credit applicant must
// submit, by evaluating a declarative waiver-rule matrix against the
// applicant's attributes.
//
// Usage:
//
//	# Serve the checklist frontend and API
//	docmatrix serve
//
//	# One-shot evaluation from the command line
//	docmatrix check --attr fonte=fgts --attr porte=pequeno --renda "R$ 3.000,00"
//
//	# Maintain the catalog
//	docmatrix docs list
//	docmatrix docs add --code GAR --name "Garantia" --field fonte --field renda
//	docmatrix rules add GAR --desc "Dispensa FGTS" --cond '{"fonte": ["fgts"]}'
//	docmatrix rules remove GAR --index 0
package main

func main() {
	Execute()
}
