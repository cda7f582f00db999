package authorize

// defaultPolicies is the clinic capability table:
//
//	role          | patient           | dental            | user
//	--------------+-------------------+-------------------+------------------
//	super-admin   | add, edit, delete | add, edit, delete | add, edit, delete
//	doctor        | add, edit, delete | add, edit, delete | —
//	administrator | add, edit         | —                 | —
func defaultPolicies() []PermissionPolicy {
	all := []Action{ActionAdd, ActionEdit, ActionDelete}

	var out []PermissionPolicy

	for _, res := range []Resource{ResourcePatient, ResourceDental, ResourceUser} {
		for _, act := range all {
			out = append(out, PermissionPolicy{Subject: RoleSuperAdmin, Object: res, Action: act})
		}
	}

	for _, res := range []Resource{ResourcePatient, ResourceDental} {
		for _, act := range all {
			out = append(out, PermissionPolicy{Subject: RoleDoctor, Object: res, Action: act})
		}
	}

	for _, act := range []Action{ActionAdd, ActionEdit} {
		out = append(out, PermissionPolicy{Subject: RoleAdministrator, Object: ResourcePatient, Action: act})
	}

	return out
}
