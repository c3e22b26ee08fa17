/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package weburl

import (
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/idna"
)

// joinHostPort appends ":port" to host when port is not empty. Unlike
// net.JoinHostPort it never adds brackets: IP literal hosts already carry
// them.
func joinHostPort(host, port string) string {
	if port == "" {
		return host
	}
	return host + ":" + port
}

// ASCIIHostname returns the hostname converted to its ASCII form with IDNA
// ToASCII, suitable for DNS lookups. IP literals and the empty hostname are
// returned unchanged.
func (u *URL) ASCIIHostname() (string, error) {
	hostname := u.Hostname()
	if hostname == "" || strings.HasPrefix(hostname, "[") {
		return hostname, nil
	}
	return errtrace.Wrap2(idna.Lookup.ToASCII(hostname))
}
