// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n resolves translation keys for templates and, in development
mode, tags every rendered string with an invisible marker naming its key.

# Quick start

Build an [Orchestrator] once and expose it to templates through a [Filter]:

	src := source.New(tolgee.NewClient(cfg))
	o := i18n.NewOrchestrator(src, i18n.WithDefaultLocale("en"))
	f := i18n.NewFilter(o)

	ctx = i18n.WithOptions(ctx, i18n.Options{Locale: "en", Mode: i18n.Development})
	f.T(ctx, "hello_with_params", "name", "Bella") // "Hello, Bella" + marker

Keys are dotted paths into a nested dictionary ("namespace.morning").
A key that does not resolve is returned unchanged and never carries a
marker.

# Modes

In [Production] the dictionary comes from [Options.StaticData]. In
[Development] it is fetched from Tolgee once per locale and cached for the
lifetime of the Orchestrator's source, and the rendered text is followed by
[zwc.EncodeString] of {"k":"<key>"}. Fetch failures are not reported to the
caller: the locale simply behaves as if it had no translations.

# Formatting

Placeholders use the {name} syntax. Variables can be passed as a [Vars] map
or as alternating key-value pairs:

	f.T(ctx, "greeting", i18n.Vars{"name": user.Name})
	f.T(ctx, "greeting", "name", user.Name)

Unknown placeholders render as the empty string unless the renderer was
created with KeepUnknown, in which case the literal {name} token is kept.
Numbers are not localised.

# Existing lookups

[WithTolgee] wraps an existing [LookupFunc] so that it is transparently
rerouted through the Orchestrator in development mode; [Select] picks a
[Translator] strategy once per render context. Package i18n/legacy provides
go-i18n and gettext backed lookups.
*/
package i18n
