// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MalformedDeclarationId Id = iota + 1
	MissingIdentityId
	UnresolvedDependencyId
	InvalidDependencyKindId
	ModuleExistsId
	GitNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links for this issue type
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	malformedDeclarationIssue = &Issue{
		id: MalformedDeclarationId,
		mdMsg: `
# Invalid module.cfg!

A module declaration file could not be parsed.

## Expected format (INI, configparser compatible):
~~~ini
[module]
library = executor
deps = cfgfile
~~~

## Things you can try:
- Check the reported file for INI syntax errors
- Make sure the [module] section header is present
- Compare against a module generated by:
~~~
$ makemake module create example
~~~`,
	}

	missingIdentityIssue = &Issue{
		id: MissingIdentityId,
		mdMsg: `
# Module has no identity!

A module.cfg must declare the module as either a program or a library.

## Declare a library:
~~~ini
[module]
library = executor
~~~

## Declare a program:
~~~ini
[module]
program = myapp
~~~

The two keys are mutually exclusive; declare exactly one.`,
	}

	unresolvedDependencyIssue = &Issue{
		id: UnresolvedDependencyId,
		mdMsg: `
# Unknown dependency!

A module's deps list names a module that does not exist under src/.

## Things you can try:
- Check the deps list for typos:
~~~ini
[module]
library = executor
deps = cfgfile reporter
~~~
- Create the missing module:
~~~
$ makemake module create <name>
~~~
- Remember that deps are module directory names, not artifact names`,
	}

	invalidDependencyKindIssue = &Issue{
		id: InvalidDependencyKindId,
		mdMsg: `
# Dependency is a program!

Only library modules can appear in a deps list. Programs produce executables,
which nothing can link against.

## Things you can try:
- Move the shared code into a library module and depend on that
- Remove the program from the deps list`,
	}

	moduleExistsIssue = &Issue{
		id: ModuleExistsId,
		mdMsg: `
# Module already exists!

There is already a directory with that name under src/, and makemake refuses
to overwrite it.

## Things you can try:
- Pick a different module name
- Delete the existing directory first if it was created by mistake`,
	}

	gitNotFoundIssue = &Issue{
		id: GitNotFoundId,
		mdMsg: `
# Cannot find git!

The clean command asks git which files are ignored or untracked, so git must
be installed and on the command path.

## Things you can try:
- Install git: https://git-scm.com/downloads
- Run clean from a directory that is a git repository
- Check that PATH includes the git binary`,
	}

	issues = map[Id]*Issue{
		malformedDeclarationIssue.Id():  malformedDeclarationIssue,
		missingIdentityIssue.Id():       missingIdentityIssue,
		unresolvedDependencyIssue.Id():  unresolvedDependencyIssue,
		invalidDependencyKindIssue.Id(): invalidDependencyKindIssue,
		moduleExistsIssue.Id():          moduleExistsIssue,
		gitNotFoundIssue.Id():           gitNotFoundIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
