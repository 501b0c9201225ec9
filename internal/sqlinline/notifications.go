package sqlinline

const QSelectNotifiableItems = `--sql b1427efd-896f-4c72-9df3-e717206c3b92
select it.id, it.description, it.storage_location,
       dn.date_accepted, d.name, d.email
from donation_items it
join donations dn on dn.id = it.donation_id
join donors d on d.id = dn.donor_id
where dn.date_accepted <= $1::date
  and it.notification_sent is null
  and d.email is not null
order by dn.date_accepted, it.created_at;
`

const QMarkItemNotified = `--sql 26acd4aa-fa6f-4089-a53a-daa4c3809e90
update donation_items
set notification_sent = now()
where id = $1::uuid;
`
