package native

/*
#include <stdlib.h>
#include <string.h>
#include <krb5.h>
#include <kadm5/admin.h>
*/
import "C"

import "unsafe"

// princEntToRecord deep-copies a populated kadm5_principal_ent_rec. Any
// decode failure aborts the whole conversion; the caller's releaser still
// frees the native entry.
func (c *Conn) princEntToRecord(ent *C.kadm5_principal_ent_rec) (*PrincipalRecord, error) {
	name, err := c.unparseName("principal", ent.principal)
	if err != nil {
		return nil, err
	}
	modName, err := c.unparseName("mod_name", ent.mod_name)
	if err != nil {
		return nil, err
	}

	rec := &PrincipalRecord{
		Name:             name,
		PrincExpireTime:  int64(ent.princ_expire_time),
		LastPwdChange:    int64(ent.last_pwd_change),
		PwExpiration:     int64(ent.pw_expiration),
		MaxLife:          int64(ent.max_life),
		ModName:          modName,
		ModDate:          int64(ent.mod_date),
		Attributes:       int32(ent.attributes),
		Kvno:             uint32(ent.kvno),
		Mkvno:            uint32(ent.mkvno),
		AuxAttributes:    int64(ent.aux_attributes),
		MaxRenewableLife: int64(ent.max_renewable_life),
		LastSuccess:      int64(ent.last_success),
		LastFailed:       int64(ent.last_failed),
		FailAuthCount:    uint32(ent.fail_auth_count),
	}
	if ent.policy != nil {
		policy, err := decodeCString("policy", ent.policy)
		if err != nil {
			return nil, err
		}
		rec.Policy = policy
		rec.HasPolicy = true
	}
	rec.TLData = copyTLData(ent.tl_data, int(ent.n_tl_data))
	return rec, nil
}

// copyTLData deep-copies a krb5_tl_data chain, preserving order.
func copyTLData(tl *C.krb5_tl_data, n int) []TLRecord {
	if tl == nil {
		return nil
	}
	out := make([]TLRecord, 0, n)
	for node := tl; node != nil; node = node.tl_data_next {
		out = append(out, TLRecord{
			Type:     int16(node.tl_data_type),
			Contents: C.GoBytes(unsafe.Pointer(node.tl_data_contents), C.int(node.tl_data_length)),
		})
	}
	return out
}

// buildTLData allocates a native krb5_tl_data chain from owned entries.
// Nodes and their contents are C allocations owned by rel.
func buildTLData(rel *releaser, entries []TLRecord) *C.krb5_tl_data {
	var head, prev *C.krb5_tl_data
	for _, e := range entries {
		node := (*C.krb5_tl_data)(C.calloc(1, C.sizeof_krb5_tl_data))
		rel.add(func() { C.free(unsafe.Pointer(node)) })
		node.tl_data_type = C.krb5_int16(e.Type)
		node.tl_data_length = C.krb5_ui_2(len(e.Contents))
		if len(e.Contents) > 0 {
			contents := C.CBytes(e.Contents)
			rel.add(func() { C.free(contents) })
			node.tl_data_contents = (*C.krb5_octet)(contents)
		}
		if prev != nil {
			prev.tl_data_next = node
		} else {
			head = node
		}
		prev = node
	}
	return head
}

// recordToPrincEnt populates a native principal entry with exactly the
// fields selected by mask. Allocations are owned by rel; the entry itself
// is caller-provided stack memory consumed only for the call duration.
func (c *Conn) recordToPrincEnt(rel *releaser, rec *PrincipalRecord, mask int64, ent *C.kadm5_principal_ent_rec) error {
	princ, err := c.parseName(rel, rec.Name)
	if err != nil {
		return err
	}
	ent.principal = princ
	if mask&MaskPrincExpireTime != 0 {
		ent.princ_expire_time = C.krb5_timestamp(rec.PrincExpireTime)
	}
	if mask&MaskPwExpiration != 0 {
		ent.pw_expiration = C.krb5_timestamp(rec.PwExpiration)
	}
	if mask&MaskMaxLife != 0 {
		ent.max_life = C.krb5_deltat(rec.MaxLife)
	}
	if mask&MaskMaxRenewableLife != 0 {
		ent.max_renewable_life = C.krb5_deltat(rec.MaxRenewableLife)
	}
	if mask&MaskAttributes != 0 {
		ent.attributes = C.krb5_flags(rec.Attributes)
	}
	if mask&MaskKvno != 0 {
		ent.kvno = C.krb5_kvno(rec.Kvno)
	}
	if mask&MaskAuxAttributes != 0 {
		ent.aux_attributes = C.long(rec.AuxAttributes)
	}
	if mask&MaskPolicy != 0 {
		ent.policy = cString(rel, rec.Policy)
	}
	if mask&MaskTLData != 0 {
		ent.tl_data = buildTLData(rel, rec.TLData)
		ent.n_tl_data = C.krb5_int16(len(rec.TLData))
	}
	return nil
}

// GetPrincipal fetches a principal entry and deep-copies it. A
// KADM5_UNK_PRINC failure surfaces as a *CallError with that code; the
// public absent-vs-error split happens in pkg/kadm5.
func (c *Conn) GetPrincipal(name string) (*PrincipalRecord, error) {
	rel := &releaser{}
	defer rel.run()

	princ, err := c.parseName(rel, name)
	if err != nil {
		return nil, err
	}

	var ent C.kadm5_principal_ent_rec
	code := C.kadm5_get_principal(c.handle, princ, &ent,
		C.long(C.KADM5_PRINCIPAL_NORMAL_MASK|C.KADM5_TL_DATA))
	if err := c.callError(code); err != nil {
		return nil, err
	}
	// The populated entry owns nested allocations (names, policy,
	// tl_data); kadm5_free_principal_ent releases all of them.
	rel.add(func() { C.kadm5_free_principal_ent(c.handle, &ent) })

	return c.princEntToRecord(&ent)
}

// CreatePrincipal creates a principal from the masked record fields. An
// empty password with MaskKeyData set requests creation without keys.
func (c *Conn) CreatePrincipal(rec *PrincipalRecord, mask int64, password string) error {
	rel := &releaser{}
	defer rel.run()

	var ent C.kadm5_principal_ent_rec
	if err := c.recordToPrincEnt(rel, rec, mask, &ent); err != nil {
		return err
	}
	var pass *C.char
	if password != "" {
		pass = cString(rel, password)
	}
	return c.callError(C.kadm5_create_principal(c.handle, &ent, C.long(mask), pass))
}

// ModifyPrincipal applies the masked record fields to an existing
// principal in one native call.
func (c *Conn) ModifyPrincipal(rec *PrincipalRecord, mask int64) error {
	rel := &releaser{}
	defer rel.run()

	var ent C.kadm5_principal_ent_rec
	if err := c.recordToPrincEnt(rel, rec, mask, &ent); err != nil {
		return err
	}
	return c.callError(C.kadm5_modify_principal(c.handle, &ent, C.long(mask)))
}

// RenamePrincipal renames a principal.
func (c *Conn) RenamePrincipal(oldName, newName string) error {
	rel := &releaser{}
	defer rel.run()

	source, err := c.parseName(rel, oldName)
	if err != nil {
		return err
	}
	target, err := c.parseName(rel, newName)
	if err != nil {
		return err
	}
	return c.callError(C.kadm5_rename_principal(c.handle, source, target))
}

// DeletePrincipal deletes a principal.
func (c *Conn) DeletePrincipal(name string) error {
	rel := &releaser{}
	defer rel.run()

	princ, err := c.parseName(rel, name)
	if err != nil {
		return err
	}
	return c.callError(C.kadm5_delete_principal(c.handle, princ))
}

// ChangePassword sets a new password for a principal. The plaintext is
// handed to the native call and freed immediately after; it is never
// logged or retained.
func (c *Conn) ChangePassword(name, password string) error {
	rel := &releaser{}
	defer rel.run()

	princ, err := c.parseName(rel, name)
	if err != nil {
		return err
	}
	return c.callError(C.kadm5_chpass_principal(c.handle, princ, cString(rel, password)))
}

// RandKeyPrincipal randomizes a principal's keys. The returned keyblock
// array is malloc'd as one block but each keyblock owns its key contents,
// so elements are released individually before the array itself.
func (c *Conn) RandKeyPrincipal(name string) error {
	rel := &releaser{}
	defer rel.run()

	princ, err := c.parseName(rel, name)
	if err != nil {
		return err
	}
	var keys *C.krb5_keyblock
	var nKeys C.int
	code := C.kadm5_randkey_principal(c.handle, princ, &keys, &nKeys)
	if keys != nil {
		rel.add(func() {
			for _, kb := range unsafe.Slice(keys, int(nKeys)) {
				C.krb5_free_keyblock_contents(c.ctx, &kb)
			}
			C.free(unsafe.Pointer(keys))
		})
	}
	return c.callError(code)
}

// nameList copies a char** result list. kadm5_free_name_list releases the
// array and every element string; there is no per-element free here.
func (c *Conn) nameList(names **C.char, count C.int) ([]string, error) {
	out := make([]string, 0, int(count))
	for _, p := range unsafe.Slice(names, int(count)) {
		s, err := decodeCString("name list entry", p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ListPrincipals enumerates principal names matching a glob expression.
func (c *Conn) ListPrincipals(glob string) ([]string, error) {
	rel := &releaser{}
	defer rel.run()

	var names **C.char
	var count C.int
	code := C.kadm5_get_principals(c.handle, cString(rel, glob), &names, &count)
	if err := c.callError(code); err != nil {
		return nil, err
	}
	rel.add(func() { C.kadm5_free_name_list(c.handle, names, count) })
	return c.nameList(names, count)
}

// ListPolicies enumerates policy names matching a glob expression.
func (c *Conn) ListPolicies(glob string) ([]string, error) {
	rel := &releaser{}
	defer rel.run()

	var names **C.char
	var count C.int
	code := C.kadm5_get_policies(c.handle, cString(rel, glob), &names, &count)
	if err := c.callError(code); err != nil {
		return nil, err
	}
	rel.add(func() { C.kadm5_free_name_list(c.handle, names, count) })
	return c.nameList(names, count)
}

// policyEntToRecord deep-copies a populated kadm5_policy_ent_rec.
func (c *Conn) policyEntToRecord(ent *C.kadm5_policy_ent_rec) (*PolicyRecord, error) {
	name, err := decodeCString("policy", ent.policy)
	if err != nil {
		return nil, err
	}
	rec := &PolicyRecord{
		Name:              name,
		PwMinLife:         int64(ent.pw_min_life),
		PwMaxLife:         int64(ent.pw_max_life),
		PwMinLength:       int64(ent.pw_min_length),
		PwMinClasses:      int64(ent.pw_min_classes),
		PwHistoryNum:      int64(ent.pw_history_num),
		RefCount:          int64(ent.policy_refcnt),
		PwMaxFail:         uint32(ent.pw_max_fail),
		PwFailCountInt:    int64(ent.pw_failcnt_interval),
		PwLockoutDuration: int64(ent.pw_lockout_duration),
		Attributes:        int32(ent.attributes),
		MaxLife:           int64(ent.max_life),
		MaxRenewableLife:  int64(ent.max_renewable_life),
	}
	if ent.allowed_keysalts != nil {
		ks, err := decodeCString("allowed_keysalts", ent.allowed_keysalts)
		if err != nil {
			return nil, err
		}
		rec.AllowedKeysalts = ks
		rec.HasAllowedKeysalts = true
	}
	rec.TLData = copyTLData(ent.tl_data, int(ent.n_tl_data))
	return rec, nil
}

// recordToPolicyEnt populates a native policy entry with exactly the
// fields selected by mask.
func recordToPolicyEnt(rel *releaser, rec *PolicyRecord, mask int64, ent *C.kadm5_policy_ent_rec) {
	ent.policy = cString(rel, rec.Name)
	if mask&MaskPwMinLife != 0 {
		ent.pw_min_life = C.long(rec.PwMinLife)
	}
	if mask&MaskPwMaxLife != 0 {
		ent.pw_max_life = C.long(rec.PwMaxLife)
	}
	if mask&MaskPwMinLength != 0 {
		ent.pw_min_length = C.long(rec.PwMinLength)
	}
	if mask&MaskPwMinClasses != 0 {
		ent.pw_min_classes = C.long(rec.PwMinClasses)
	}
	if mask&MaskPwHistoryNum != 0 {
		ent.pw_history_num = C.long(rec.PwHistoryNum)
	}
	if mask&MaskPwMaxFailure != 0 {
		ent.pw_max_fail = C.krb5_kvno(rec.PwMaxFail)
	}
	if mask&MaskPwFailureCountInt != 0 {
		ent.pw_failcnt_interval = C.krb5_deltat(rec.PwFailCountInt)
	}
	if mask&MaskPwLockoutDuration != 0 {
		ent.pw_lockout_duration = C.krb5_deltat(rec.PwLockoutDuration)
	}
	if mask&MaskPolicyAttributes != 0 {
		ent.attributes = C.krb5_flags(rec.Attributes)
	}
	if mask&MaskPolicyMaxLife != 0 {
		ent.max_life = C.krb5_deltat(rec.MaxLife)
	}
	if mask&MaskPolicyMaxRenewable != 0 {
		ent.max_renewable_life = C.krb5_deltat(rec.MaxRenewableLife)
	}
	if mask&MaskPolicyAllowedKeysalts != 0 && rec.HasAllowedKeysalts {
		ent.allowed_keysalts = cString(rel, rec.AllowedKeysalts)
	}
	if mask&MaskPolicyTLData != 0 {
		ent.tl_data = buildTLData(rel, rec.TLData)
		ent.n_tl_data = C.krb5_int16(len(rec.TLData))
	}
}

// GetPolicy fetches a policy entry and deep-copies it. KADM5_UNK_POLICY
// surfaces as a *CallError, split into absent-vs-error by pkg/kadm5.
func (c *Conn) GetPolicy(name string) (*PolicyRecord, error) {
	rel := &releaser{}
	defer rel.run()

	var ent C.kadm5_policy_ent_rec
	code := C.kadm5_get_policy(c.handle, C.kadm5_policy_t(cString(rel, name)), &ent)
	if err := c.callError(code); err != nil {
		return nil, err
	}
	rel.add(func() { C.kadm5_free_policy_ent(c.handle, &ent) })

	return c.policyEntToRecord(&ent)
}

// CreatePolicy creates a policy from the masked record fields.
func (c *Conn) CreatePolicy(rec *PolicyRecord, mask int64) error {
	rel := &releaser{}
	defer rel.run()

	var ent C.kadm5_policy_ent_rec
	recordToPolicyEnt(rel, rec, mask, &ent)
	return c.callError(C.kadm5_create_policy(c.handle, &ent, C.long(mask)))
}

// ModifyPolicy applies the masked record fields to an existing policy.
func (c *Conn) ModifyPolicy(rec *PolicyRecord, mask int64) error {
	rel := &releaser{}
	defer rel.run()

	var ent C.kadm5_policy_ent_rec
	recordToPolicyEnt(rel, rec, mask, &ent)
	return c.callError(C.kadm5_modify_policy(c.handle, &ent, C.long(mask)))
}

// DeletePolicy deletes a policy.
func (c *Conn) DeletePolicy(name string) error {
	rel := &releaser{}
	defer rel.run()

	return c.callError(C.kadm5_delete_policy(c.handle, C.kadm5_policy_t(cString(rel, name))))
}
