package sqlinline

const QInsertDonation = `--sql 98d7f546-853a-4522-ba6f-e2add7600675
insert into donations(id, donor_id, date_accepted, notes)
values ($1::uuid, $2::uuid, $3::date, $4::text)
returning id, donor_id, date_accepted, notes, created_at;
`

const QListDonationsForDonor = `--sql 6c9950f7-e7a6-4a19-a020-eba420890550
select id, donor_id, date_accepted, notes, created_at
from donations
where donor_id = $1::uuid
order by date_accepted desc, created_at desc;
`

const QListItemsForDonor = `--sql dd9b5a63-3dc3-40f4-a018-c950465f9ae9
select it.id, it.donation_id, it.description, it.storage_location,
       it.photo_url, it.notification_sent, it.created_at
from donation_items it
join donations dn on dn.id = it.donation_id
where dn.donor_id = $1::uuid
order by dn.date_accepted desc, dn.created_at desc, it.created_at;
`
